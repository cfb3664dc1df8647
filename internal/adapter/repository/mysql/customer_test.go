package mysql

import (
	"context"
	"errors"
	"testing"

	domain "credit-approval/internal/domain/customer"
	"credit-approval/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func makeCustomer(income float64) *domain.Customer {
	return &domain.Customer{
		FirstName:     "Meera",
		LastName:      "Iyer",
		Age:           34,
		PhoneNumber:   "9876543210",
		MonthlyIncome: income,
		ApprovedLimit: domain.ApprovedLimitFor(income),
	}
}

func TestCustomer_CreateAndGet(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := makeCustomer(150_000)
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("Create did not set ID")
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName() != "Meera Iyer" || got.ApprovedLimit != 5_400_000 || got.CurrentDebt != 0 {
		t.Errorf("unexpected customer: %+v", got)
	}
}

func TestCustomer_SaveUpdatesDebt(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := makeCustomer(50_000)
	if err := repo.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.CurrentDebt = 250_000
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentDebt != 250_000 {
		t.Errorf("CurrentDebt = %v, want 250000", got.CurrentDebt)
	}
}

func TestCustomer_NotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID: expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByIDForUpdate: expected ErrRecordNotFound, got %v", err)
	}
}

func TestCustomer_Count(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("empty Count = %d, %v", n, err)
	}
	_ = repo.Create(ctx, makeCustomer(10_000))
	_ = repo.Create(ctx, makeCustomer(20_000))
	if n, _ := repo.Count(ctx); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
}
