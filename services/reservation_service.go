package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/easyserve/easyserve-api/models"
)

const (
	// ReservationWindow is how long each reservation holds its table
	ReservationWindow = 2 * time.Hour

	// Daily booking grid boundaries and step
	firstSlotMinutes = 10 * 60 // 10:00
	lastSlotMinutes  = 22 * 60 // 22:00, exclusive
	slotStepMinutes  = 30

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CreateReservationInput is the draft a reservation is created from
type CreateReservationInput struct {
	RestaurantID    uint
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ReservationDate string
	ReservationTime string
	PartySize       int
	Source          string
	SpecialRequests string
}

// UpdateReservationInput carries the mutable fields of a reservation.
// Status is not part of this operation.
type UpdateReservationInput struct {
	ReservationDate string
	ReservationTime string
	PartySize       int
	SpecialRequests string
}

// ReservationFilter holds optional predicates for listing reservations.
// Nil fields impose no filter.
type ReservationFilter struct {
	RestaurantID  *uint
	From          *string // inclusive date bound, "2006-01-02"
	To            *string // inclusive date bound
	Status        *models.ReservationStatus
	CustomerEmail *string
}

// ReservationService owns the reservation lifecycle: booking with
// availability arbitration, status transitions, and slot queries. Each
// reservation reserves a fixed 2-hour window starting at its booked time;
// two active reservations at the same restaurant on the same date conflict
// iff their windows overlap.
type ReservationService struct {
	store         ReservationStore
	notifications NotificationSink
	clock         Clock
}

// NewReservationService creates a reservation lifecycle service
func NewReservationService(store ReservationStore, notifications NotificationSink, clock Clock) *ReservationService {
	return &ReservationService{
		store:         store,
		notifications: notifications,
		clock:         clock,
	}
}

// CheckAvailability reports whether the requested slot is free of conflicts
// with active reservations at that restaurant on that date. Pure query.
func (s *ReservationService) CheckAvailability(restaurantID uint, date, timeOfDay string) (bool, error) {
	if err := validateSlot(date, timeOfDay); err != nil {
		return false, err
	}
	return s.slotFree(restaurantID, date, timeOfDay, 0)
}

// Create books a reservation if the requested slot is free. The
// availability check and the insert are not one atomic step; a concurrent
// booking may slip between them, which callers tolerate the same way they
// tolerate two phone calls booking at once.
func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	if err := validateReservationInput(input); err != nil {
		return nil, err
	}

	free, err := s.slotFree(input.RestaurantID, input.ReservationDate, input.ReservationTime, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, fmt.Errorf("%s %s: %w", input.ReservationDate, input.ReservationTime, ErrSlotUnavailable)
	}

	source := models.ReservationSource(input.Source)
	if input.Source == "" {
		source = models.ReservationSourceOnline
	}

	now := s.clock.Now()
	reservation := models.Reservation{
		RestaurantID:    input.RestaurantID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ReservationDate: input.ReservationDate,
		ReservationTime: input.ReservationTime,
		PartySize:       input.PartySize,
		Status:          models.ReservationStatusConfirmed,
		Source:          source,
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Put(&reservation); err != nil {
		return nil, err
	}

	dispatch(s.notifications, NotificationEvent{
		Type:          NotificationReservationConfirmed,
		Email:         reservation.CustomerEmail,
		Phone:         reservation.CustomerPhone,
		ReservationID: reservation.ID,
		Message: fmt.Sprintf("Hi %s, your reservation on %s at %s is confirmed",
			reservation.CustomerName, reservation.ReservationDate, reservation.ReservationTime),
	})

	return &reservation, nil
}

// GetByID returns the reservation with the given ID
func (s *ReservationService) GetByID(reservationID uint) (*models.Reservation, error) {
	return s.store.Get(reservationID)
}

// Update overwrites a reservation's date, time, party size and special
// requests. A date or time change re-runs the availability check with the
// reservation itself excluded. Status is unaffected.
func (s *ReservationService) Update(reservationID uint, input UpdateReservationInput) (*models.Reservation, error) {
	if err := validateSlot(input.ReservationDate, input.ReservationTime); err != nil {
		return nil, err
	}
	if input.PartySize < 1 || input.PartySize > 20 {
		return nil, fmt.Errorf("%w: party_size must be between 1 and 20", ErrValidation)
	}

	existing, err := s.store.Get(reservationID)
	if err != nil {
		return nil, err
	}

	if existing.ReservationDate != input.ReservationDate || existing.ReservationTime != input.ReservationTime {
		free, err := s.slotFree(existing.RestaurantID, input.ReservationDate, input.ReservationTime, reservationID)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, fmt.Errorf("%s %s: %w", input.ReservationDate, input.ReservationTime, ErrSlotUnavailable)
		}
	}

	return s.store.Update(reservationID, func(reservation *models.Reservation) error {
		reservation.ReservationDate = input.ReservationDate
		reservation.ReservationTime = input.ReservationTime
		reservation.PartySize = input.PartySize
		reservation.SpecialRequests = input.SpecialRequests
		reservation.UpdatedAt = s.clock.Now()
		return nil
	})
}

// Cancel sets the reservation to CANCELLED and records the reason.
// Re-cancelling an already cancelled reservation succeeds; the slot is
// freed either way.
func (s *ReservationService) Cancel(reservationID uint, reason string) (*models.Reservation, error) {
	reservation, err := s.store.Update(reservationID, func(reservation *models.Reservation) error {
		reservation.Status = models.ReservationStatusCancelled
		if reason != "" {
			reservation.SpecialRequests = appendNote(reservation.SpecialRequests, "Cancelled: "+reason)
		}
		reservation.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatch(s.notifications, NotificationEvent{
		Type:          NotificationReservationCancelled,
		Email:         reservation.CustomerEmail,
		Phone:         reservation.CustomerPhone,
		ReservationID: reservation.ID,
		Message:       "Your reservation has been cancelled. We hope to see you again!",
	})

	return reservation, nil
}

// Confirm sets the reservation back to CONFIRMED. Only CONFIRMED and
// SEATED reservations may be confirmed; reviving a cancelled, completed or
// no-show reservation is rejected.
func (s *ReservationService) Confirm(reservationID uint) (*models.Reservation, error) {
	return s.transition(reservationID, models.ReservationStatusConfirmed)
}

// Seat marks a confirmed reservation as seated, recording the table the
// host assigned when one is given. The table sticks on the record even
// after the reservation completes.
func (s *ReservationService) Seat(reservationID uint, tableNumber *int) (*models.Reservation, error) {
	if tableNumber != nil && *tableNumber < 1 {
		return nil, fmt.Errorf("%w: table_number must be positive", ErrValidation)
	}
	return s.store.Update(reservationID, func(reservation *models.Reservation) error {
		if !reservation.Status.CanTransitionTo(models.ReservationStatusSeated) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, models.ReservationStatusSeated)
		}
		reservation.Status = models.ReservationStatusSeated
		if tableNumber != nil {
			reservation.TableNumber = tableNumber
		}
		reservation.UpdatedAt = s.clock.Now()
		return nil
	})
}

// Complete marks a seated reservation as completed
func (s *ReservationService) Complete(reservationID uint) (*models.Reservation, error) {
	return s.transition(reservationID, models.ReservationStatusCompleted)
}

// NoShow marks a reservation whose party never arrived
func (s *ReservationService) NoShow(reservationID uint) (*models.Reservation, error) {
	return s.transition(reservationID, models.ReservationStatusNoShow)
}

func (s *ReservationService) transition(reservationID uint, target models.ReservationStatus) (*models.Reservation, error) {
	return s.store.Update(reservationID, func(reservation *models.Reservation) error {
		if !reservation.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
		}
		reservation.Status = target
		reservation.UpdatedAt = s.clock.Now()
		return nil
	})
}

// AvailableSlots returns the subset of the daily booking grid
// (10:00-22:00 in 30-minute steps) whose 2-hour window does not conflict
// with any active reservation at the restaurant on that date
func (s *ReservationService) AvailableSlots(restaurantID uint, date string) ([]string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: reservation_date must be formatted as %s", ErrValidation, dateLayout)
	}

	reservations, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	booked := make([]int, 0)
	for _, r := range reservations {
		if r.RestaurantID == restaurantID && r.ReservationDate == date && r.Status.IsActive() {
			if minutes, err := clockMinutes(r.ReservationTime); err == nil {
				booked = append(booked, minutes)
			}
		}
	}

	slots := make([]string, 0)
	for m := firstSlotMinutes; m < lastSlotMinutes; m += slotStepMinutes {
		conflict := false
		for _, b := range booked {
			if windowsOverlap(b, m) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
		}
	}
	return slots, nil
}

// Filter returns all reservations matching every supplied predicate,
// ordered by date then time ascending
func (s *ReservationService) Filter(filter ReservationFilter) ([]models.Reservation, error) {
	reservations, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if filter.RestaurantID != nil && r.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.From != nil && r.ReservationDate < *filter.From {
			continue
		}
		if filter.To != nil && r.ReservationDate > *filter.To {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.CustomerEmail != nil && r.CustomerEmail != *filter.CustomerEmail {
			continue
		}
		matched = append(matched, r)
	}

	sortReservationsBySlot(matched)
	return matched, nil
}

// ByDate returns a restaurant's reservations for a date, earliest first
func (s *ReservationService) ByDate(restaurantID uint, date string) ([]models.Reservation, error) {
	return s.Filter(ReservationFilter{
		RestaurantID: &restaurantID,
		From:         &date,
		To:           &date,
	})
}

// ByStatus returns a restaurant's reservations in a given status,
// earliest slot first
func (s *ReservationService) ByStatus(restaurantID uint, status models.ReservationStatus) ([]models.Reservation, error) {
	if !models.ValidReservationStatus(string(status)) {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, status)
	}
	return s.Filter(ReservationFilter{
		RestaurantID: &restaurantID,
		Status:       &status,
	})
}

// Upcoming returns a restaurant's active reservations from now onward,
// earliest first
func (s *ReservationService) Upcoming(restaurantID uint) ([]models.Reservation, error) {
	reservations, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := now.Format(dateLayout)
	nowClock := now.Format(timeLayout)

	upcoming := make([]models.Reservation, 0)
	for _, r := range reservations {
		if r.RestaurantID != restaurantID || !r.Status.IsActive() {
			continue
		}
		if r.ReservationDate > today || (r.ReservationDate == today && r.ReservationTime > nowClock) {
			upcoming = append(upcoming, r)
		}
	}

	sortReservationsBySlot(upcoming)
	return upcoming, nil
}

// ByCustomerEmail returns a customer's reservations, newest booking first
func (s *ReservationService) ByCustomerEmail(email string) ([]models.Reservation, error) {
	reservations, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Reservation, 0)
	for _, r := range reservations {
		if r.CustomerEmail == email {
			matched = append(matched, r)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// NoShowCount returns how many reservations on a date ended as no-shows
func (s *ReservationService) NoShowCount(restaurantID uint, date string) (int, error) {
	reservations, err := s.ByDate(restaurantID, date)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range reservations {
		if r.Status == models.ReservationStatusNoShow {
			count++
		}
	}
	return count, nil
}

// NoShowRate returns the percentage of a date's reservations that ended as
// no-shows, zero when the date has none
func (s *ReservationService) NoShowRate(restaurantID uint, date string) (float64, error) {
	reservations, err := s.ByDate(restaurantID, date)
	if err != nil {
		return 0, err
	}
	if len(reservations) == 0 {
		return 0, nil
	}

	noShows := 0
	for _, r := range reservations {
		if r.Status == models.ReservationStatusNoShow {
			noShows++
		}
	}
	return float64(noShows) / float64(len(reservations)) * 100, nil
}

// slotFree reports whether the slot is free of conflicts with active
// reservations, ignoring the reservation with excludeID (0 excludes none)
func (s *ReservationService) slotFree(restaurantID uint, date, timeOfDay string, excludeID uint) (bool, error) {
	requested, err := clockMinutes(timeOfDay)
	if err != nil {
		return false, err
	}

	reservations, err := s.store.Values()
	if err != nil {
		return false, err
	}

	for _, r := range reservations {
		if r.ID == excludeID || r.RestaurantID != restaurantID || r.ReservationDate != date {
			continue
		}
		if !r.Status.IsActive() {
			continue
		}
		existing, err := clockMinutes(r.ReservationTime)
		if err != nil {
			continue
		}
		if windowsOverlap(existing, requested) {
			return false, nil
		}
	}
	return true, nil
}

// windowsOverlap reports whether two 2-hour windows starting at the given
// minutes-since-midnight overlap: NOT(t2 >= t1+2h OR t2+2h <= t1)
func windowsOverlap(t1, t2 int) bool {
	window := int(ReservationWindow.Minutes())
	return !(t2 >= t1+window || t2+window <= t1)
}

// clockMinutes parses a "15:04" clock string into minutes since midnight
func clockMinutes(timeOfDay string) (int, error) {
	parsed, err := time.Parse(timeLayout, timeOfDay)
	if err != nil {
		return 0, fmt.Errorf("%w: reservation_time must be formatted as %s", ErrValidation, timeLayout)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func validateSlot(date, timeOfDay string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: reservation_date must be formatted as %s", ErrValidation, dateLayout)
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return fmt.Errorf("%w: reservation_time must be formatted as %s", ErrValidation, timeLayout)
	}
	return nil
}

func validateReservationInput(input CreateReservationInput) error {
	if input.RestaurantID == 0 {
		return fmt.Errorf("%w: restaurant_id is required", ErrValidation)
	}
	if input.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if input.PartySize < 1 || input.PartySize > 20 {
		return fmt.Errorf("%w: party_size must be between 1 and 20", ErrValidation)
	}
	if input.Source != "" && !models.ValidReservationSource(input.Source) {
		return fmt.Errorf("%w: source must be one of ONLINE, PHONE, WALK_IN", ErrValidation)
	}
	return validateSlot(input.ReservationDate, input.ReservationTime)
}

func sortReservationsBySlot(reservations []models.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].ReservationDate != reservations[j].ReservationDate {
			return reservations[i].ReservationDate < reservations[j].ReservationDate
		}
		if reservations[i].ReservationTime != reservations[j].ReservationTime {
			return reservations[i].ReservationTime < reservations[j].ReservationTime
		}
		return reservations[i].ID < reservations[j].ID
	})
}
