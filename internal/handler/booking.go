package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/gym-booking/internal/middleware"
	"github.com/arkumar/gym-booking/internal/repository"
	"github.com/arkumar/gym-booking/internal/service"
)

// BookingHandler maps the booking REST surface onto the booking service.
// Reads go straight to the repository; every slot-touching write goes
// through the service and then busts the season cache, because the
// cached listings embed availableSlots.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Svc      *service.BookingService
	Cache    *middleware.SeasonCache // may be nil
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *repository.BookingRepo, svc *service.BookingService, cache *middleware.SeasonCache) *BookingHandler {
	if bookings == nil || svc == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Svc: svc, Cache: cache}
}

// List handles GET /api/bookings.  Seasons come populated via JOIN.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListByUser handles GET /api/bookings/user/:userId.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User ID is required"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create handles POST /api/bookings.  On success one season slot has been
// consumed and the booking is returned with amount copied from the season
// price.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		UserID   string `json:"userId"`
		SeasonID uint64 `json:"seasonId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	body.UserID = strings.TrimSpace(body.UserID)
	if body.UserID == "" || body.SeasonID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId and seasonId are required"})
	}

	booking, err := h.Svc.Create(c.Request().Context(), body.UserID, body.SeasonID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSeasonNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Season not found"})
		case errors.Is(err, repository.ErrNoSlots):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "No available slots for this season"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
		}
	}
	h.Cache.Bust(c.Request().Context())
	return c.JSON(http.StatusCreated, booking)
}

// Update handles PATCH /api/bookings/:id.  Only the provided fields change;
// a transition to cancelled also releases the season slot.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid booking id"})
	}
	var body struct {
		Status        *string `json:"status"`
		PaymentStatus *string `json:"paymentStatus"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	booking, err := h.Svc.UpdateStatus(c.Request().Context(), id, body.Status, body.PaymentStatus)
	if err != nil {
		return h.bookingError(c, err)
	}
	if body.Status != nil {
		h.Cache.Bust(c.Request().Context())
	}
	return c.JSON(http.StatusOK, booking)
}

// Cancel handles DELETE /api/bookings/:id.  The booking is soft-cancelled:
// its status flips to cancelled and the season slot is released; the record
// itself stays for history.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid booking id"})
	}
	if _, err := h.Svc.Cancel(c.Request().Context(), id); err != nil {
		return h.bookingError(c, err)
	}
	h.Cache.Bust(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking cancelled successfully"})
}

// bookingError maps service failures shared by Update and Cancel.
func (h *BookingHandler) bookingError(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Msg})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	case errors.Is(err, repository.ErrBookingCancelled):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Booking is already cancelled"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
}
