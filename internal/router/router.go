// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/arkumar/gym-booking/internal/config"
	"github.com/arkumar/gym-booking/internal/handler"
	"github.com/arkumar/gym-booking/internal/middleware"
)

// Handlers groups everything the router needs to wire the API surface.
type Handlers struct {
	Seasons  *handler.SeasonHandler
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
}

// RegisterRoutes wires the full REST surface under /api plus the health
// check.  The rate limiter covers the whole group; the season cache covers
// only the season reads (listings embed availableSlots, so the booking
// handlers invalidate it on slot-changing writes).
func RegisterRoutes(e *echo.Echo, h Handlers, cache *middleware.SeasonCache, rdb *redis.Client) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Seasons
	seasons := api.Group("/seasons")
	seasons.GET("", h.Seasons.List, cache.Middleware())
	seasons.GET("/:id", h.Seasons.Get, cache.Middleware())
	seasons.POST("", h.Seasons.Create)

	// Bookings
	bookings := api.Group("/bookings")
	bookings.GET("", h.Bookings.List)
	bookings.GET("/user/:userId", h.Bookings.ListByUser)
	bookings.POST("", h.Bookings.Create)
	bookings.PATCH("/:id", h.Bookings.Update)
	bookings.DELETE("/:id", h.Bookings.Cancel)

	// Payments
	payments := api.Group("/payments")
	payments.POST("", h.Payments.Create)
	payments.GET("/user/:userId", h.Payments.ListByUser)
}
