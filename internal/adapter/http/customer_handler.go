package http

import (
	"net/http"

	"credit-approval/internal/usecase/customer"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct{ uc *customer.Usecase }

func NewCustomerHandler(uc *customer.Usecase) *CustomerHandler { return &CustomerHandler{uc: uc} }

type registerReq struct {
	FirstName     string  `json:"first_name"     validate:"required,max=50"`
	LastName      string  `json:"last_name"      validate:"required,max=50"`
	Age           int     `json:"age"            validate:"gte=18,lte=120"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gt=0,lte=1000000000000"`
	PhoneNumber   string  `json:"phone_number"   validate:"required,phone"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), customer.RegisterInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
