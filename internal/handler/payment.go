package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/service"
)

// PaymentHandler serves the standalone payment ledger.
type PaymentHandler struct {
	Svc *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	if svc == nil {
		panic("nil service passed to NewPaymentHandler")
	}
	return &PaymentHandler{Svc: svc}
}

// Create handles POST /api/payments.  The request body binds directly onto
// the payment model; server-side validation happens in the service.
func (h *PaymentHandler) Create(c echo.Context) error {
	var payment model.Payment
	if err := c.Bind(&payment); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := h.Svc.Create(c.Request().Context(), &payment); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Msg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusCreated, payment)
}

// ListByUser handles GET /api/payments/user/:userId.
func (h *PaymentHandler) ListByUser(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User ID is required"})
	}
	payments, err := h.Svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusOK, payments)
}
