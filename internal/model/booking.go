package model

import "time"

// Booking status values.  A cancelled booking is terminal: it cannot be
// updated again and its slot has already been returned to the season.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment status values shared by bookings and payments.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Booking records a user's claim on one slot of a season.  Amount is copied
// from the season price at booking time and never changes afterwards.
//
// Fields:
//
//	ID            – primary key identifier.
//	UserID        – opaque user identifier supplied by the client.
//	SeasonID      – the season being booked.
//	Status        – pending, confirmed or cancelled.
//	PaymentStatus – pending, completed or failed.
//	Amount        – season price at the time of booking.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64    `json:"id"`
	UserID        string    `json:"userId"`
	SeasonID      uint64    `json:"seasonId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentFailed
}
