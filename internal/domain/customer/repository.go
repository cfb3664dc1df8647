package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint64) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
	// Count is used to decide whether bulk ingestion has already run.
	Count(ctx context.Context) (int64, error)
}
