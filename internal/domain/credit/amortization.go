package credit

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Installment returns the fixed monthly payment that amortizes principal
// over tenureMonths at annualRatePercent, rounded to 2 decimals.
//
//	r       = annualRatePercent / 1200
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. When (1+r)^n overflows the
// payment is its limit, the monthly interest P*r. Callers guarantee
// principal > 0, tenureMonths >= 1 and annualRatePercent >= 0.
func Installment(principal, annualRatePercent float64, tenureMonths int) float64 {
	r := annualRatePercent / 1200
	n := float64(tenureMonths)
	if r == 0 {
		return round2(principal / n)
	}
	factor := math.Pow(1+r, n)
	if math.IsInf(factor, 0) {
		return round2(principal * r)
	}
	return round2(principal * r * factor / (factor - 1))
}

// round2 passes NaN and ±Inf through; decimal cannot represent them.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// EndDate adds tenure months to start. Days past the end of the target
// month clamp to its last day, so Jan 31 + 1 month is Feb 28 (or 29).
func EndDate(start time.Time, tenureMonths int) time.Time {
	y, m, d := start.Date()
	first := time.Date(y, m+time.Month(tenureMonths), 1, 0, 0, 0, 0, start.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, start.Location())
}

// Today returns t's calendar date, in t's own location, as midnight UTC.
// Loan dates are kept as UTC calendar days so DATE columns store the
// same day whatever the host zone is.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBefore reports whether a's calendar date is earlier than b's.
func DayBefore(a, b time.Time) bool { return dayOf(a) < dayOf(b) }

// dayOf orders calendar dates regardless of time of day or location.
func dayOf(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
