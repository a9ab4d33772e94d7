package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/arkumar/gym-booking/internal/config"
	"github.com/arkumar/gym-booking/internal/database"
	"github.com/arkumar/gym-booking/internal/handler"
	"github.com/arkumar/gym-booking/internal/middleware"
	"github.com/arkumar/gym-booking/internal/queue"
	"github.com/arkumar/gym-booking/internal/repository"
	"github.com/arkumar/gym-booking/internal/router"
	"github.com/arkumar/gym-booking/internal/service"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("cannot connect to the database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("cannot ensure schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, running without cache and rate limiting")
	}
	seasonCache := middleware.NewSeasonCache(config.LoadCacheConfig(), rdb)

	seasons := repository.NewSeasonRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)

	publisher := service.NewAMQPPublisher()
	bookingSvc := service.NewBookingService(db, seasons, bookings, publisher)
	paymentSvc := service.NewPaymentService(payments, publisher)

	h := router.Handlers{
		Seasons:  handler.NewSeasonHandler(seasons, seasonCache),
		Bookings: handler.NewBookingHandler(bookings, bookingSvc, seasonCache),
		Payments: handler.NewPaymentHandler(paymentSvc),
	}

	// Background consumer appends lifecycle events to logs/events.log and
	// reconnects on its own; it never takes the server down.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, h, seasonCache, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
