package model

import "time"

// Season is a time-bounded training offering with finite capacity that
// users book into.  AvailableSlots counts the unconsumed capacity and is
// mutated only through the season repository's conditional updates, which
// maintain the invariant 0 <= AvailableSlots <= Capacity.
//
// Fields:
//
//	ID             – primary key identifier.
//	Name           – display name of the offering.
//	StartDate      – first day of the season.
//	EndDate        – last day of the season.
//	Capacity       – total number of slots.
//	Price          – price per slot; copied onto bookings at creation.
//	Trainer        – name of the trainer running the season.
//	Description    – free-text description.
//	AvailableSlots – slots not yet consumed by a booking.
//	CreatedAt      – creation timestamp.
//	UpdatedAt      – last update timestamp.
type Season struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Capacity       uint32    `json:"capacity"`
	Price          float64   `json:"price"`
	Trainer        string    `json:"trainer"`
	Description    string    `json:"description"`
	AvailableSlots uint32    `json:"availableSlots"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
