package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationTableName(t *testing.T) {
	reservation := Reservation{}
	assert.Equal(t, "reservations", reservation.TableName(), "Table name should be 'reservations'")
}

func TestValidReservationStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
	}{
		{"confirmed", "CONFIRMED", true},
		{"seated", "SEATED", true},
		{"completed", "COMPLETED", true},
		{"cancelled", "CANCELLED", true},
		{"no show", "NO_SHOW", true},
		{"unknown", "WAITLISTED", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidReservationStatus(tt.status))
		})
	}
}

func TestReservationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"confirmed re-confirm", ReservationStatusConfirmed, ReservationStatusConfirmed, true},
		{"confirmed to seated", ReservationStatusConfirmed, ReservationStatusSeated, true},
		{"confirmed to cancelled", ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{"confirmed to no show", ReservationStatusConfirmed, ReservationStatusNoShow, true},
		{"confirmed cannot complete directly", ReservationStatusConfirmed, ReservationStatusCompleted, false},
		{"seated to completed", ReservationStatusSeated, ReservationStatusCompleted, true},
		{"seated back to confirmed", ReservationStatusSeated, ReservationStatusConfirmed, true},
		{"seated to cancelled", ReservationStatusSeated, ReservationStatusCancelled, true},
		{"seated to no show", ReservationStatusSeated, ReservationStatusNoShow, true},
		{"completed is terminal", ReservationStatusCompleted, ReservationStatusSeated, false},
		{"cancelled is terminal", ReservationStatusCancelled, ReservationStatusConfirmed, false},
		{"no show is terminal", ReservationStatusNoShow, ReservationStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatusIsTerminal(t *testing.T) {
	assert.True(t, ReservationStatusCompleted.IsTerminal())
	assert.True(t, ReservationStatusCancelled.IsTerminal())
	assert.True(t, ReservationStatusNoShow.IsTerminal())
	assert.False(t, ReservationStatusConfirmed.IsTerminal())
	assert.False(t, ReservationStatusSeated.IsTerminal())
	assert.False(t, ReservationStatus("BOGUS").IsTerminal())
}

func TestReservationStatusIsActive(t *testing.T) {
	// Only active reservations hold their 2-hour window against new bookings.
	assert.True(t, ReservationStatusConfirmed.IsActive())
	assert.True(t, ReservationStatusSeated.IsActive())
	assert.False(t, ReservationStatusCompleted.IsActive())
	assert.False(t, ReservationStatusCancelled.IsActive())
	assert.False(t, ReservationStatusNoShow.IsActive())
}

func TestValidReservationSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		valid  bool
	}{
		{"online", "ONLINE", true},
		{"phone", "PHONE", true},
		{"walk in", "WALK_IN", true},
		{"unknown", "FAX", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidReservationSource(tt.source))
		})
	}
}
