package customermock

import (
	"context"

	domain "credit-approval/internal/domain/customer"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, c *domain.Customer) error
	GetByIDFn func(ctx context.Context, id uint64) (*domain.Customer, error)
	SaveFn    func(ctx context.Context, c *domain.Customer) error
	CountFn   func(ctx context.Context) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
