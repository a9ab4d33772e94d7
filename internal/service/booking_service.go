// Package service holds the business logic sitting between the HTTP
// handlers and the repositories.  The booking service owns the only
// cross-entity invariant in the system: a booking consumes exactly one
// season slot on creation and returns it exactly once on cancellation,
// with 0 <= available_slots <= capacity at every point in between.
package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/queue"
	"github.com/arkumar/gym-booking/internal/repository"
)

// BookingService orchestrates season lookup, the atomic slot claim and the
// booking record write.  Every mutating operation runs inside a single
// transaction, so a failure after the slot decrement rolls the decrement
// back with everything else.
type BookingService struct {
	db        *sql.DB
	seasons   *repository.SeasonRepo
	bookings  *repository.BookingRepo
	publisher EventPublisher // optional; nil disables events
}

// NewBookingService constructs a BookingService and panics if a required
// dependency is nil.  The publisher may be nil.
func NewBookingService(db *sql.DB, seasons *repository.SeasonRepo, bookings *repository.BookingRepo, publisher EventPublisher) *BookingService {
	if db == nil || seasons == nil || bookings == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{db: db, seasons: seasons, bookings: bookings, publisher: publisher}
}

// Create books one slot of a season for a user.
//
// Inside one transaction it locks the season row, claims a slot with the
// conditional decrement and inserts the booking with the season's current
// price.  Two concurrent calls racing for the last slot serialize on the
// row lock; the loser sees zero rows affected and gets ErrNoSlots with the
// season unchanged.
func (s *BookingService) Create(ctx context.Context, userID string, seasonID uint64) (*model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	season, err := s.seasons.GetByIDTx(ctx, tx, seasonID)
	if err != nil {
		return nil, err // ErrSeasonNotFound or a DB failure
	}
	claimed, err := s.seasons.DecrementSlotTx(ctx, tx, seasonID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, repository.ErrNoSlots
	}

	booking := &model.Booking{
		UserID:        userID,
		SeasonID:      seasonID,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentPending,
		Amount:        season.Price,
	}
	if err := s.bookings.CreateTx(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, queue.Event{
		Type:       queue.TypeBookingCreated,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		SeasonID:   season.ID,
		SeasonName: season.Name,
		Amount:     booking.Amount,
	})
	return booking, nil
}

// UpdateStatus partially updates a booking's status and/or payment status.
// Nil pointers leave the corresponding field untouched.  A transition to
// cancelled goes through the same slot release as Cancel, so there is
// exactly one cancellation path in the system.  Updates against a booking
// that is already cancelled are rejected: cancelled is terminal.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint64, status, paymentStatus *string) (*model.Booking, error) {
	if status != nil && !model.ValidBookingStatus(*status) {
		return nil, &ValidationError{Msg: "Invalid booking status"}
	}
	if paymentStatus != nil && !model.ValidPaymentStatus(*paymentStatus) {
		return nil, &ValidationError{Msg: "Invalid payment status"}
	}
	if status == nil && paymentStatus == nil {
		return nil, &ValidationError{Msg: "No fields to update"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	booking, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.BookingCancelled {
		return nil, repository.ErrBookingCancelled
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, bookingID, status, paymentStatus); err != nil {
		return nil, err
	}
	cancelling := status != nil && *status == model.BookingCancelled
	if cancelling {
		// Return the slot to the season.  Best-effort: a missing season or
		// one already at capacity does not fail the cancellation.
		if _, err := s.seasons.IncrementSlotTx(ctx, tx, booking.SeasonID); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	if cancelling {
		s.publish(ctx, queue.Event{
			Type:      queue.TypeBookingCancelled,
			BookingID: updated.ID,
			UserID:    updated.UserID,
			SeasonID:  updated.SeasonID,
			Amount:    updated.Amount,
		})
	}
	return updated, nil
}

// Cancel marks a booking cancelled and releases its slot.  The booking
// record is kept: cancellation is a status transition, not a delete, so
// the history stays queryable and double-cancels are detectable.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	cancelled := model.BookingCancelled
	return s.UpdateStatus(ctx, bookingID, &cancelled, nil)
}

// publish sends an event when a publisher is configured.  Failures are
// logged by the publisher and ignored here: events never fail a request.
func (s *BookingService) publish(ctx context.Context, ev queue.Event) {
	if s.publisher == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("booking-service: publish %s failed: %v", ev.Type, err)
	}
}
