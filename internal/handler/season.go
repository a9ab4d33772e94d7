// Package handler exposes the HTTP façade.  Handlers are stateless
// request/response mappers: they parse input, call a repository or service,
// and translate domain failures into status codes.  NotFound becomes 404,
// validation and slot failures become 400, everything else becomes 500
// with a generic message body.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/gym-booking/internal/middleware"
	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/repository"
)

// genericErrMsg is the 500 body the presentation layer expects.
const genericErrMsg = "Something went wrong!"

// SeasonHandler serves season reads and the administrative create.
type SeasonHandler struct {
	Seasons *repository.SeasonRepo
	Cache   *middleware.SeasonCache // may be nil
}

// NewSeasonHandler constructs a SeasonHandler.
func NewSeasonHandler(seasons *repository.SeasonRepo, cache *middleware.SeasonCache) *SeasonHandler {
	if seasons == nil {
		panic("nil repository passed to NewSeasonHandler")
	}
	return &SeasonHandler{Seasons: seasons, Cache: cache}
}

// List handles GET /api/seasons.
func (h *SeasonHandler) List(c echo.Context) error {
	seasons, err := h.Seasons.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusOK, seasons)
}

// Get handles GET /api/seasons/:id.
func (h *SeasonHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid season id"})
	}
	season, err := h.Seasons.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeasonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	return c.JSON(http.StatusOK, season)
}

// Create handles POST /api/seasons, the administrative action that seeds
// offerings.  A new season always starts fully available.
func (h *SeasonHandler) Create(c echo.Context) error {
	var body struct {
		Name        string    `json:"name"`
		StartDate   time.Time `json:"startDate"`
		EndDate     time.Time `json:"endDate"`
		Capacity    uint32    `json:"capacity"`
		Price       float64   `json:"price"`
		Trainer     string    `json:"trainer"`
		Description string    `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Trainer = strings.TrimSpace(body.Trainer)
	if body.Name == "" || body.Trainer == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name and trainer are required"})
	}
	if body.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price cannot be negative"})
	}
	if !body.EndDate.After(body.StartDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "End date must be after start date"})
	}

	season := &model.Season{
		Name:        body.Name,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Capacity:    body.Capacity,
		Price:       body.Price,
		Trainer:     body.Trainer,
		Description: body.Description,
	}
	if err := h.Seasons.Create(c.Request().Context(), season); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": genericErrMsg})
	}
	h.Cache.Bust(c.Request().Context())
	return c.JSON(http.StatusCreated, season)
}
