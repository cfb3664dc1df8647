package credit

import (
	"time"

	"credit-approval/internal/domain/loan"
)

const (
	// IncomeCapRatio is the share of monthly income all installments,
	// including the requested one, may consume.
	IncomeCapRatio = 0.5

	midTierFloorRate = 12.0
	lowTierFloorRate = 16.0
)

// Request holds the terms a customer asks for.
type Request struct {
	LoanAmount   float64
	InterestRate float64
	Tenure       int
}

// Decision is the outcome of Decide. Rate and Installment are filled in
// even when the request is rejected.
type Decision struct {
	Approved    bool
	Rate        float64
	Installment float64
	// Capped is set when the income cap overturned a tier approval.
	Capped bool
}

// CurrentInstallments sums the installments of ACTIVE loans that have not
// ended before today. Loans without an end date count as running.
func CurrentInstallments(history []loan.Loan, today time.Time) float64 {
	var total float64
	for _, l := range history {
		if !l.IsActive() {
			continue
		}
		if l.EndDate != nil && DayBefore(*l.EndDate, today) {
			continue
		}
		total += l.MonthlyInstallment
	}
	return total
}

// Decide maps a score and requested terms to an approval and the rate the
// lender will actually charge:
//
//	score > 50        approve at the requested rate
//	30 < score <= 50  approve, rate at least 12%
//	10 < score <= 30  approve, rate at least 16%
//	score <= 10       reject
//
// The installment is computed at the effective rate. If it pushes the
// customer's total installments above half the monthly income the request
// is rejected whatever the tier said.
func Decide(score int, req Request, currentInstallments, monthlyIncome float64) Decision {
	d := Decision{Rate: req.InterestRate}

	switch {
	case score > 50:
		d.Approved = true
	case score > 30:
		d.Approved = true
		d.Rate = max(req.InterestRate, midTierFloorRate)
	case score > 10:
		d.Approved = true
		d.Rate = max(req.InterestRate, lowTierFloorRate)
	}

	d.Installment = Installment(req.LoanAmount, d.Rate, req.Tenure)

	if currentInstallments+d.Installment > IncomeCapRatio*monthlyIncome {
		d.Capped = d.Approved
		d.Approved = false
	}
	return d
}
