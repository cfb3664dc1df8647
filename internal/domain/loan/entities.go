package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrInvalidInput = errors.New("invalid loan input")
)

const (
	// MaxTenure is the longest term accepted, in months.
	MaxTenure = 600
	// MaxAmount keeps principals inside the decimal(18,2) columns.
	MaxAmount = 1_000_000_000_000
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed:
		return true
	}
	return false
}

type Loan struct {
	ID                 uint64     `gorm:"primaryKey;column:id" json:"loan_id"`
	CustomerID         uint64     `gorm:"not null;index:idx_loans_customer_status" json:"customer_id"`
	LoanAmount         float64    `gorm:"type:decimal(18,2);not null" json:"loan_amount"`
	Tenure             int        `gorm:"not null" json:"tenure"`
	InterestRate       float64    `gorm:"type:decimal(6,2);not null" json:"interest_rate"`
	MonthlyInstallment float64    `gorm:"type:decimal(18,2);not null" json:"monthly_installment"`
	EMIsPaidOnTime     int        `gorm:"column:emis_paid_on_time;not null;default:0" json:"emis_paid_on_time"`
	StartDate          time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate            *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Status             Status     `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_loans_customer_status" json:"status"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

func (l Loan) IsActive() bool { return l.Status == StatusActive }

// RepaymentsLeft is the number of installments not yet recorded as paid.
func (l Loan) RepaymentsLeft() int {
	if left := l.Tenure - l.EMIsPaidOnTime; left > 0 {
		return left
	}
	return 0
}
