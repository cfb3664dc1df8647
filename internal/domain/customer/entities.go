package customer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("customer not found")
	ErrInvalidInput = errors.New("invalid customer input")
)

// limitMultiple is the granularity approved limits are rounded to.
const limitMultiple = 100_000

type Customer struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"customer_id"`
	FirstName     string    `gorm:"size:50;not null" json:"first_name"`
	LastName      string    `gorm:"size:50;not null" json:"last_name"`
	Age           int       `gorm:"not null" json:"age"`
	PhoneNumber   string    `gorm:"size:15;not null" json:"phone_number"`
	MonthlyIncome float64   `gorm:"type:decimal(18,2);not null" json:"monthly_income"`
	ApprovedLimit float64   `gorm:"type:decimal(18,2);not null" json:"approved_limit"`
	CurrentDebt   float64   `gorm:"type:decimal(18,2);not null;default:0" json:"current_debt"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) FullName() string { return c.FirstName + " " + c.LastName }

// ApprovedLimitFor returns 36 months of income rounded to the nearest
// 100,000. Exact halves round to even.
func ApprovedLimitFor(monthlyIncome float64) float64 {
	units := decimal.NewFromFloat(monthlyIncome).
		Mul(decimal.NewFromInt(36)).
		Div(decimal.NewFromInt(limitMultiple)).
		RoundBank(0)
	return units.Mul(decimal.NewFromInt(limitMultiple)).InexactFloat64()
}
