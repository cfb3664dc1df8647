package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"credit-approval/internal/domain/credit"
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/domain/uow"
	"credit-approval/internal/infrastructure/lock"
	"credit-approval/internal/infrastructure/metrics"

	"gorm.io/gorm"
)

// Locker serializes work on one key across processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type Usecase struct {
	customers customer.Repository
	loans     loan.Repository
	uow       uow.UnitOfWork
	locker    Locker
	now       func() time.Time
}

type Option func(*Usecase)

// WithLocker adds a cross-process lock around applications.
func WithLocker(l Locker) Option { return func(u *Usecase) { u.locker = l } }

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(customers customer.Repository, loans loan.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{customers: customers, loans: loans, uow: tx, now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

func validateRequest(in LoanRequestInput) error {
	switch {
	case in.CustomerID == 0:
		return fmt.Errorf("%w: customer_id is required", loan.ErrInvalidInput)
	case in.LoanAmount <= 0:
		return fmt.Errorf("%w: loan_amount must be positive", loan.ErrInvalidInput)
	case in.LoanAmount > loan.MaxAmount:
		return fmt.Errorf("%w: loan_amount must not exceed %d", loan.ErrInvalidInput, int64(loan.MaxAmount))
	case in.InterestRate < 0:
		return fmt.Errorf("%w: interest_rate must not be negative", loan.ErrInvalidInput)
	case in.Tenure < 1 || in.Tenure > loan.MaxTenure:
		return fmt.Errorf("%w: tenure must be between 1 and %d months", loan.ErrInvalidInput, loan.MaxTenure)
	}
	return nil
}

func (in LoanRequestInput) request() credit.Request {
	return credit.Request{LoanAmount: in.LoanAmount, InterestRate: in.InterestRate, Tenure: in.Tenure}
}

// CheckEligibility runs the scorer and decider without persisting anything.
func (u *Usecase) CheckEligibility(ctx context.Context, in LoanRequestInput) (*EligibilityDTO, error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}
	c, err := u.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	history, err := u.loans.ListByCustomerID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	a := credit.Assess(*c, history, in.request(), u.now())
	record("check", a)

	return &EligibilityDTO{
		CustomerID:            c.ID,
		Approval:              a.Approved,
		InterestRate:          in.InterestRate,
		CorrectedInterestRate: a.Rate,
		Tenure:                in.Tenure,
		MonthlyInstallment:    a.Installment,
	}, nil
}

// Create decides on an application and, when approved, stores the new
// loan. The decision and the insert run in one transaction holding the
// customer row lock, so two applications for the same customer cannot
// both pass the caps on the same snapshot.
func (u *Usecase) Create(ctx context.Context, in LoanRequestInput) (*CreateLoanDTO, error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}

	if u.locker != nil {
		release, err := u.locker.Acquire(ctx, "customer:"+strconv.FormatUint(in.CustomerID, 10))
		if err != nil {
			if errors.Is(err, lock.ErrHeld) {
				return nil, ErrApplicationInProgress
			}
			return nil, err
		}
		defer release()
	}

	var dto *CreateLoanDTO
	err := u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, c *customer.Customer) error {
		history, err := r.Loans.ListByCustomerID(ctx, c.ID)
		if err != nil {
			return err
		}

		now := u.now()
		a := credit.Assess(*c, history, in.request(), now)
		record("create", a)
		if !a.Approved {
			log.Printf("loan application rejected: customer=%d score=%d capped=%t", c.ID, a.Score, a.Capped)
			return &NotEligibleError{
				CustomerID:   c.ID,
				Score:        a.Score,
				Rate:         a.Rate,
				Installment:  a.Installment,
				IncomeCapped: a.Capped,
			}
		}

		start := credit.Today(now)
		end := credit.EndDate(start, in.Tenure)
		l := &loan.Loan{
			CustomerID:         c.ID,
			LoanAmount:         in.LoanAmount,
			Tenure:             in.Tenure,
			InterestRate:       a.Rate,
			MonthlyInstallment: a.Installment,
			EMIsPaidOnTime:     0,
			StartDate:          start,
			EndDate:            &end,
			Status:             loan.StatusActive,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		c.CurrentDebt += in.LoanAmount
		if err := r.Customers.Save(ctx, c); err != nil {
			return err
		}

		id := l.ID
		dto = &CreateLoanDTO{
			LoanID:             &id,
			CustomerID:         c.ID,
			LoanApproved:       true,
			Message:            MsgApproved,
			MonthlyInstallment: l.MonthlyInstallment,
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	metrics.LoansCreated.Inc()
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFoundAs(err, loan.ErrNotFound)
	}
	c, err := u.customers.GetByID(ctx, l.CustomerID)
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	return &LoanDetailDTO{
		LoanID: l.ID,
		Customer: CustomerSummaryDTO{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PhoneNumber: c.PhoneNumber,
			Age:         c.Age,
		},
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyInstallment,
		Tenure:             l.Tenure,
	}, nil
}

// ListActive returns the customer's ACTIVE loans.
func (u *Usecase) ListActive(ctx context.Context, customerID uint64) ([]ActiveLoanDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	loans, err := u.loans.ListActiveByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]ActiveLoanDTO, 0, len(loans))
	for _, l := range loans {
		out = append(out, ActiveLoanDTO{
			LoanID:             l.ID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.MonthlyInstallment,
			RepaymentsLeft:     l.RepaymentsLeft(),
		})
	}
	return out, nil
}

// notFoundAs swaps gorm's not-found error for a domain one and passes
// every other error through untouched.
func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func record(op string, a credit.Assessment) {
	metrics.Scores.Observe(float64(a.Score))
	outcome := metrics.OutcomeRejected
	switch {
	case a.Approved:
		outcome = metrics.OutcomeApproved
	case a.Capped:
		outcome = metrics.OutcomeCapped
	}
	metrics.Decisions.WithLabelValues(op, outcome).Inc()
}
