package uowmock

import (
	"context"
	"errors"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCustomerTxFn func(ctx context.Context, customerID uint64, fn func(r uow.Repos, c *customer.Customer) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW that runs fn directly against repos, with no
// transaction. WithinCustomerTx loads the customer through repos first.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinCustomerTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *customer.Customer) error) error {
			c, err := repos.Customers.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, c)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinCustomerTx(ctx context.Context, customerID uint64, fn func(r uow.Repos, c *customer.Customer) error) error {
	if m.WithinCustomerTxFn != nil {
		return m.WithinCustomerTxFn(ctx, customerID, fn)
	}
	return errUnimplemented
}
