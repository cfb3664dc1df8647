package loanmock

import (
	"context"

	domain "credit-approval/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// List methods default to an empty history.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListByCustomerIDFn       func(ctx context.Context, customerID uint64) ([]domain.Loan, error)
	ListActiveByCustomerIDFn func(ctx context.Context, customerID uint64) ([]domain.Loan, error)
	CountFn                  func(ctx context.Context) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled // or errors.New("not implemented")
}

func (m *Repo) ListByCustomerID(ctx context.Context, customerID uint64) ([]domain.Loan, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) ListActiveByCustomerID(ctx context.Context, customerID uint64) ([]domain.Loan, error) {
	if m.ListActiveByCustomerIDFn != nil {
		return m.ListActiveByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
