package loan

import (
	"errors"
	"fmt"

	"credit-approval/internal/domain/customer"
)

var (
	ErrCustomerNotFound = customer.ErrNotFound
	// ErrApplicationInProgress means another application for the same
	// customer currently holds the customer lock.
	ErrApplicationInProgress = errors.New("another application for this customer is in progress")
)

const (
	MsgApproved    = "Loan approved"
	MsgNotEligible = "Loan not approved based on eligibility criteria"
)

// NotEligibleError is a decision, not a fault. It carries the terms that
// were attempted so callers can show them.
type NotEligibleError struct {
	CustomerID   uint64
	Score        int
	Rate         float64
	Installment  float64
	IncomeCapped bool
}

func (e *NotEligibleError) Error() string {
	if e.IncomeCapped {
		return fmt.Sprintf("customer %d: installments would exceed half of monthly income", e.CustomerID)
	}
	return fmt.Sprintf("customer %d: credit score %d too low", e.CustomerID, e.Score)
}

// LoanRequestInput is shared by eligibility checks and applications.
type LoanRequestInput struct {
	CustomerID   uint64  `json:"customer_id"`
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	Tenure       int     `json:"tenure"`
}

type EligibilityDTO struct {
	CustomerID            uint64  `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
}

type CreateLoanDTO struct {
	LoanID             *uint64 `json:"loan_id"`
	CustomerID         uint64  `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

type CustomerSummaryDTO struct {
	ID          uint64 `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
}

type LoanDetailDTO struct {
	LoanID             uint64             `json:"loan_id"`
	Customer           CustomerSummaryDTO `json:"customer"`
	LoanAmount         float64            `json:"loan_amount"`
	InterestRate       float64            `json:"interest_rate"`
	MonthlyInstallment float64            `json:"monthly_installment"`
	Tenure             int                `json:"tenure"`
}

type ActiveLoanDTO struct {
	LoanID             uint64  `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	RepaymentsLeft     int     `json:"repayments_left"`
}
