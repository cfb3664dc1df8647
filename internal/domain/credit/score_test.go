package credit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
)

var today = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func ptr[T any](v T) *T { return &v }

func mkLoan(status loan.Status, amount float64, tenure, paid int, start time.Time) loan.Loan {
	return loan.Loan{
		LoanAmount:         amount,
		Tenure:             tenure,
		InterestRate:       10,
		MonthlyInstallment: Installment(amount, 10, tenure),
		EMIsPaidOnTime:     paid,
		StartDate:          start,
		EndDate:            ptr(EndDate(start, tenure)),
		Status:             status,
	}
}

func repeatLoan(n int, l loan.Loan) []loan.Loan {
	out := make([]loan.Loan, n)
	for i := range out {
		out[i] = l
	}
	return out
}

func TestScore_EmptyHistoryIsDefault(t *testing.T) {
	for _, c := range []customer.Customer{
		{MonthlyIncome: 150_000, ApprovedLimit: 5_400_000},
		{MonthlyIncome: 1, ApprovedLimit: 0},
	} {
		assert.Equal(t, 75, Score(c, nil, today))
		assert.Equal(t, 75, Score(c, []loan.Loan{}, today))
	}
}

func TestScore_ActiveDebtOverLimitIsZero(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 1_000_000}
	history := []loan.Loan{
		mkLoan(loan.StatusActive, 600_000, 12, 12, day(2020, 1, 1)),
		mkLoan(loan.StatusActive, 400_001, 12, 12, day(2020, 1, 1)),
		mkLoan(loan.StatusClosed, 9_000_000, 12, 12, day(2019, 1, 1)),
	}
	assert.Equal(t, 0, Score(c, history, today))
}

func TestScore_ClosedLoanFullyPaid(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 1_000_000}
	history := []loan.Loan{mkLoan(loan.StatusClosed, 200_000, 12, 12, day(2024, 1, 1))}
	// 40 history + 18 count + 20 recent + 20 volume
	assert.Equal(t, 98, Score(c, history, today))
}

func TestScore_DebtEqualToLimit(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 1_000_000}
	history := []loan.Loan{
		mkLoan(loan.StatusActive, 600_000, 24, 12, day(2024, 1, 1)),
		mkLoan(loan.StatusActive, 400_000, 24, 12, day(2024, 1, 1)),
	}
	// 20 history + 16 count + 20 recent + 0 volume
	assert.Equal(t, 56, Score(c, history, today))
}

func TestScore_RecentActivityPenalty(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 1_000_000}
	history := []loan.Loan{
		mkLoan(loan.StatusClosed, 10_000, 6, 6, day(2026, 1, 10)),
		mkLoan(loan.StatusClosed, 10_000, 6, 6, day(2026, 5, 10)),
		mkLoan(loan.StatusClosed, 10_000, 6, 6, day(2025, 12, 31)),
	}
	// 40 + (20-6) + (20-10) + 20
	assert.Equal(t, 84, Score(c, history, today))
}

func TestScore_TruncatesFraction(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 300_000}
	history := []loan.Loan{
		mkLoan(loan.StatusActive, 100_000, 3, 1, day(2023, 1, 1)),
	}
	// 13.33 + 18 + 20 + 13.33 = 64.67
	assert.Equal(t, 64, Score(c, history, today))
}

func TestScore_ZeroTenureCountsAsFullyPaid(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 1_000_000}
	history := []loan.Loan{{Status: loan.StatusClosed, StartDate: day(2020, 1, 1)}}
	assert.Equal(t, 98, Score(c, history, today))
}

func TestScore_ZeroLimitMeansFullVolume(t *testing.T) {
	c := customer.Customer{ApprovedLimit: 0}
	history := []loan.Loan{mkLoan(loan.StatusClosed, 50_000, 12, 12, day(2020, 1, 1))}
	// no active debt so the hard cap does not trigger; volume ratio defaults to 1
	assert.Equal(t, 78, Score(c, history, today))
}

func TestScore_AlwaysInRangeAndDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []loan.Status{loan.StatusActive, loan.StatusClosed}
	for i := 0; i < 500; i++ {
		c := customer.Customer{ApprovedLimit: float64(rng.Intn(50)) * 100_000}
		history := make([]loan.Loan, rng.Intn(15))
		for j := range history {
			tenure := 1 + rng.Intn(60)
			history[j] = mkLoan(
				statuses[rng.Intn(2)],
				float64(1+rng.Intn(2_000_000)),
				tenure,
				rng.Intn(tenure+1),
				day(2020+rng.Intn(7), time.Month(1+rng.Intn(12)), 1+rng.Intn(28)),
			)
		}
		got := Score(c, history, today)
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, 100)
		require.Equal(t, got, Score(c, history, today))
	}
}
