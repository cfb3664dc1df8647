package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	loanuc "credit-approval/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// writeError maps usecase errors to HTTP codes. Anything unrecognised is
// a storage or programming fault and is logged, not echoed.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "customer not found"})
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, customer.ErrInvalidInput), errors.Is(err, loan.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanuc.ErrApplicationInProgress):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate writes the 400/422 response itself and reports whether
// the handler may continue.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func idParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
