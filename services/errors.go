package services

import "errors"

// Sentinel errors returned by the lifecycle services. Callers match them
// with errors.Is; controllers translate them into HTTP error codes.
var (
	// ErrNotFound is returned when an unknown identifier is passed to a
	// record-scoped operation.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a status change is not
	// permitted from the record's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotUnavailable is returned when a reservation create or update
	// collides with an existing active booking.
	ErrSlotUnavailable = errors.New("time slot not available")

	// ErrItemNotFound is returned when an unknown menu item id is
	// encountered while pricing an order.
	ErrItemNotFound = errors.New("menu item not found")

	// ErrValidation is returned for structural input violations such as
	// an empty item list or a party size out of range.
	ErrValidation = errors.New("validation failed")
)
