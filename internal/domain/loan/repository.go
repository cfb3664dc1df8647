package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// ListByCustomerID returns the full history, oldest first.
	ListByCustomerID(ctx context.Context, customerID uint64) ([]Loan, error)
	ListActiveByCustomerID(ctx context.Context, customerID uint64) ([]Loan, error)
	Count(ctx context.Context) (int64, error)
}
