// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the booking.events queue.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypePaymentCompleted = "payment.completed"
)

// Event is published when a booking is created or cancelled and when a
// payment settles.  It carries enough information for downstream consumers
// to log or notify without querying the primary database.  Fields that do
// not apply to a given type are left empty.
type Event struct {
	Type       string  `json:"type"`
	BookingID  uint64  `json:"bookingId,omitempty"`
	PaymentID  uint64  `json:"paymentId,omitempty"`
	UserID     string  `json:"userId,omitempty"`
	SeasonID   uint64  `json:"seasonId,omitempty"`
	SeasonName string  `json:"seasonName,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	OccurredAt string  `json:"occurredAt"`
}
