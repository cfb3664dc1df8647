package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct{ checks []Check }

func NewHandler(checks ...Check) *Handler { return &Handler{checks: checks} }

// Health answers 503 when any dependency check fails.
func (h *Handler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	body := map[string]any{}

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
		defer cancel()
		deps := make(map[string]string, len(h.checks))
		for _, ch := range h.checks {
			if err := ch.Ping(ctx); err != nil {
				deps[ch.Name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			deps[ch.Name] = "ok"
		}
		body["dependencies"] = deps
	}

	body["status"] = status
	body["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	return c.JSON(code, body)
}

// Index lists the public endpoints.
func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"register":          "POST /register",
		"check_eligibility": "POST /check-eligibility",
		"create_loan":       "POST /create-loan",
		"view_loan":         "GET /view-loan/:loan_id",
		"view_loans":        "GET /view-loans/:customer_id",
		"health":            "GET /health",
		"metrics":           "GET /metrics",
	})
}
