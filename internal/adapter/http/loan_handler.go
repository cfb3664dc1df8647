package http

import (
	"errors"
	"net/http"

	"credit-approval/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type loanReq struct {
	CustomerID   uint64  `json:"customer_id"   validate:"gt=0"`
	LoanAmount   float64 `json:"loan_amount"   validate:"gt=0,lte=1000000000000"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,dec2"`
	Tenure       int     `json:"tenure"        validate:"gte=1,lte=600"`
}

func (h *LoanHandler) CheckEligibility(c echo.Context) error {
	var req loanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CheckEligibility(c.Request().Context(), loan.LoanRequestInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CreateLoan answers 201 with the new loan, or 200 with loan_approved=false
// when the application is declined.
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req loanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.LoanRequestInput(req))
	var ne *loan.NotEligibleError
	switch {
	case errors.As(err, &ne):
		return c.JSON(http.StatusOK, loan.CreateLoanDTO{
			CustomerID:         ne.CustomerID,
			LoanApproved:       false,
			Message:            loan.MsgNotEligible,
			MonthlyInstallment: ne.Installment,
		})
	case err != nil:
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ViewLoan(c echo.Context) error {
	id, ok := idParam(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ViewLoans(c echo.Context) error {
	id, ok := idParam(c, "customer_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id path param"})
	}
	list, err := h.uc.ListActive(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
