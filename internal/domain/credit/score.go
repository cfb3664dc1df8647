package credit

import (
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
)

const (
	// DefaultScore is given to customers without any loan on record.
	DefaultScore = 75

	historyWeight = 40.0
	countWeight   = 20.0
	recentWeight  = 20.0
	volumeWeight  = 20.0

	countPenalty  = 2.0
	recentPenalty = 5.0
)

// ActiveDebt sums the principal of loans still marked ACTIVE.
func ActiveDebt(history []loan.Loan) float64 {
	var total float64
	for _, l := range history {
		if l.IsActive() {
			total += l.LoanAmount
		}
	}
	return total
}

// Score rates the customer's creditworthiness from 0 to 100 using the
// whole loan history. today decides which loans count as "this year".
func Score(c customer.Customer, history []loan.Loan, today time.Time) int {
	if len(history) == 0 {
		return DefaultScore
	}

	activeDebt := ActiveDebt(history)
	if activeDebt > c.ApprovedLimit {
		return 0
	}

	var tenure, paid, thisYear int
	for _, l := range history {
		tenure += l.Tenure
		paid += l.EMIsPaidOnTime
		if l.StartDate.Year() == today.Year() {
			thisYear++
		}
	}

	ratio := 1.0
	if tenure > 0 {
		ratio = float64(paid) / float64(tenure)
	}
	paymentHistory := ratio * historyWeight

	loanCount := max(0, countWeight-countPenalty*float64(len(history)))
	recent := max(0, recentWeight-recentPenalty*float64(thisYear))

	debtRatio := 1.0
	if c.ApprovedLimit > 0 {
		debtRatio = activeDebt / c.ApprovedLimit
	}
	volume := max(0, volumeWeight-volumeWeight*debtRatio)

	total := paymentHistory + loanCount + recent + volume
	return int(min(100, max(0, total)))
}
