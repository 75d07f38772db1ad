package models

import (
	"time"

	"gorm.io/gorm"
)

// ReservationStatus represents the status of a table reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusSeated    ReservationStatus = "SEATED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusNoShow    ReservationStatus = "NO_SHOW"
)

// reservationTransitions is the closed transition table for reservation
// statuses. CONFIRMED is re-reachable from SEATED so a mistakenly seated
// party can be reverted.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusConfirmed: {ReservationStatusConfirmed, ReservationStatusSeated, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusSeated:    {ReservationStatusConfirmed, ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusCompleted: {},
	ReservationStatusCancelled: {},
	ReservationStatusNoShow:    {},
}

// ValidReservationStatus reports whether s is a member of the reservation
// status enumeration
func ValidReservationStatus(s string) bool {
	_, ok := reservationTransitions[ReservationStatus(s)]
	return ok
}

// CanTransitionTo reports whether the status change from s to target is
// permitted by the reservation state machine
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions
func (s ReservationStatus) IsTerminal() bool {
	return ValidReservationStatus(string(s)) && len(reservationTransitions[s]) == 0
}

// IsActive reports whether a reservation in status s holds its time slot.
// Only active reservations participate in conflict checks.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusConfirmed || s == ReservationStatusSeated
}

// ReservationSource records how a reservation was made
type ReservationSource string

const (
	ReservationSourceOnline ReservationSource = "ONLINE"
	ReservationSourcePhone  ReservationSource = "PHONE"
	ReservationSourceWalkIn ReservationSource = "WALK_IN"
)

// ValidReservationSource reports whether s is a member of the source enumeration
func ValidReservationSource(s string) bool {
	switch ReservationSource(s) {
	case ReservationSourceOnline, ReservationSourcePhone, ReservationSourceWalkIn:
		return true
	}
	return false
}

// Reservation represents a table reservation at a restaurant.
// ReservationDate is stored as "2006-01-02" and ReservationTime as "15:04";
// each reservation holds a fixed 2-hour window starting at its time.
type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	RestaurantID    uint              `gorm:"not null;index" json:"restaurant_id"`
	CustomerName    string            `gorm:"not null" json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	ReservationDate string            `gorm:"not null;index" json:"reservation_date"`
	ReservationTime string            `gorm:"not null" json:"reservation_time"`
	PartySize       int               `gorm:"not null;check:party_size > 0" json:"party_size"`
	Status          ReservationStatus `gorm:"not null;default:'CONFIRMED';index" json:"status"`
	Source          ReservationSource `gorm:"not null;default:'ONLINE'" json:"source"`
	TableNumber     *int              `json:"table_number,omitempty"`
	SpecialRequests string            `gorm:"type:text" json:"special_requests"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
