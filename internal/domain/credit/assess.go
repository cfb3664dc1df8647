package credit

import (
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
)

// Assessment is the full evaluation of one request.
type Assessment struct {
	Score int
	Decision
}

// Assess scores the customer and decides on req against the same history
// snapshot. It holds no state; identical inputs give identical output.
func Assess(c customer.Customer, history []loan.Loan, req Request, now time.Time) Assessment {
	today := Today(now)
	score := Score(c, history, today)
	return Assessment{
		Score:    score,
		Decision: Decide(score, req, CurrentInstallments(history, today), c.MonthlyIncome),
	}
}
