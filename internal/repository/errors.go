// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP status codes: not-found errors become 404 responses,
// while slot errors become 400 responses with the stored value
// untouched.
package repository

import "errors"

// ErrSeasonNotFound indicates that no season exists with the given id.
var ErrSeasonNotFound = errors.New("season not found")

// ErrBookingNotFound indicates that no booking exists with the given id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNoSlots is returned when a booking is attempted against a season
// whose available_slots is already zero.  The season row is unchanged.
var ErrNoSlots = errors.New("no available slots")

// ErrSlotBounds is returned when a slot adjustment would leave
// available_slots outside [0, capacity].  The season row is unchanged.
var ErrSlotBounds = errors.New("slot adjustment out of bounds")

// ErrBookingCancelled is returned when an update or cancel targets a
// booking that has already been cancelled.  Cancelled is terminal.
var ErrBookingCancelled = errors.New("booking already cancelled")
