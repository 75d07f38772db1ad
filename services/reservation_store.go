package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/easyserve/easyserve-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationStore is the sole mutation surface for Reservation records.
// The contract mirrors OrderStore: Put assigns IDs, Update is an atomic
// read-modify-write on a single record.
type ReservationStore interface {
	Get(id uint) (*models.Reservation, error)
	Put(reservation *models.Reservation) error
	Update(id uint, fn func(*models.Reservation) error) (*models.Reservation, error)
	Values() ([]models.Reservation, error)
}

// MemoryReservationStore is an in-memory ReservationStore keyed by
// reservation ID, safe for concurrent use
type MemoryReservationStore struct {
	mu           sync.RWMutex
	reservations map[uint]*models.Reservation
	nextID       uint
}

// NewMemoryReservationStore creates an empty in-memory reservation store
func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{reservations: make(map[uint]*models.Reservation)}
}

// Get returns a copy of the reservation with the given ID
func (s *MemoryReservationStore) Get(id uint) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	copied := *reservation
	return &copied, nil
}

// Put stores the reservation, assigning a fresh ID if it has none
func (s *MemoryReservationStore) Put(reservation *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reservation.ID == 0 {
		s.nextID++
		reservation.ID = s.nextID
	} else if reservation.ID > s.nextID {
		s.nextID = reservation.ID
	}

	copied := *reservation
	s.reservations[reservation.ID] = &copied
	return nil
}

// Update applies fn to the stored reservation under the store lock
func (s *MemoryReservationStore) Update(id uint, fn func(*models.Reservation) error) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if err := fn(reservation); err != nil {
		return nil, err
	}
	copied := *reservation
	return &copied, nil
}

// Values returns copies of all stored reservations
func (s *MemoryReservationStore) Values() ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Reservation, 0, len(s.reservations))
	for _, reservation := range s.reservations {
		all = append(all, *reservation)
	}
	return all, nil
}

// GormReservationStore is a database-backed ReservationStore
type GormReservationStore struct {
	db *gorm.DB
}

// NewGormReservationStore creates a reservation store backed by the given database
func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{db: db}
}

// Get returns the reservation with the given ID
func (s *GormReservationStore) Get(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// Put stores the reservation; the database assigns the ID on first insert
func (s *GormReservationStore) Put(reservation *models.Reservation) error {
	if err := s.db.Save(reservation).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update applies fn to the reservation inside a transaction, holding a row
// lock where the database supports it
func (s *GormReservationStore) Update(id uint, fn func(*models.Reservation) error) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Session(&gorm.Session{})
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}
		if err := fn(&reservation); err != nil {
			return err
		}
		if err := tx.Save(&reservation).Error; err != nil {
			return fmt.Errorf("failed to save reservation %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Values returns all stored reservations
func (s *GormReservationStore) Values() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
