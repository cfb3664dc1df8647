package customer

import (
	"context"
	"fmt"
	"strings"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/infrastructure/metrics"
)

const minAge = 18

type Usecase struct{ repo customer.Repository }

func NewUsecase(r customer.Repository) *Usecase { return &Usecase{repo: r} }

// Register creates a customer. The approved limit is fixed here and never
// recomputed.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CustomerDTO, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	switch {
	case in.FirstName == "" || in.LastName == "" || in.PhoneNumber == "":
		return nil, fmt.Errorf("%w: name and phone number are required", customer.ErrInvalidInput)
	case in.Age < minAge:
		return nil, fmt.Errorf("%w: age must be at least %d", customer.ErrInvalidInput, minAge)
	case in.MonthlyIncome <= 0:
		return nil, fmt.Errorf("%w: monthly income must be positive", customer.ErrInvalidInput)
	}

	c := &customer.Customer{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Age:           in.Age,
		PhoneNumber:   in.PhoneNumber,
		MonthlyIncome: in.MonthlyIncome,
		ApprovedLimit: customer.ApprovedLimitFor(in.MonthlyIncome),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.CustomersRegistered.Inc()

	return &CustomerDTO{
		CustomerID:    c.ID,
		Name:          c.FullName(),
		Age:           c.Age,
		MonthlyIncome: c.MonthlyIncome,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}, nil
}
