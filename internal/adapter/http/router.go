package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Base      *Handler
	Customers *CustomerHandler
	Loans     *LoanHandler
}

// NewServer builds the echo instance with every route registered.
// idem wraps the non-repeatable POSTs; pass nil to run without it.
func NewServer(h Handlers, idem echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger(), middleware.Recover())

	var once []echo.MiddlewareFunc
	if idem != nil {
		once = append(once, idem)
	}

	e.GET("/", h.Base.Index)
	e.GET("/health", h.Base.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/register", h.Customers.Register, once...)
	e.POST("/check-eligibility", h.Loans.CheckEligibility)
	e.POST("/create-loan", h.Loans.CreateLoan, once...)
	e.GET("/view-loan/:loan_id", h.Loans.ViewLoan)
	e.GET("/view-loans/:customer_id", h.Loans.ViewLoans)
	return e
}
