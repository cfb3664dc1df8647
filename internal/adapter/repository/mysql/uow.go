package mysql

import (
	"context"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinCustomerTx(ctx context.Context, customerID uint64, fn func(r uow.Repos, c *customer.Customer) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := &CustomerRepository{db: tx}
		// lock the customer row up-front so concurrent applications queue here
		c, err := customers.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		return fn(uow.Repos{Customers: customers, Loans: &LoanRepository{db: tx}}, c)
	})
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Customers: &CustomerRepository{db: tx},
		Loans:     &LoanRepository{db: tx},
	}
}
