package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/easyserve/easyserve-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderStore is the sole mutation surface for Order records. Put assigns a
// fresh identifier when the record has none. Update applies fn to the stored
// record as an atomic read-modify-write: no other update of the same record
// can interleave with it.
type OrderStore interface {
	Get(id uint) (*models.Order, error)
	Put(order *models.Order) error
	Update(id uint, fn func(*models.Order) error) (*models.Order, error)
	Values() ([]models.Order, error)
}

// MemoryOrderStore is an in-memory OrderStore keyed by order ID. It is safe
// for concurrent use; the store mutex gives every Update exclusive access to
// the record it mutates.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[uint]*models.Order
	nextID uint
}

// NewMemoryOrderStore creates an empty in-memory order store
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[uint]*models.Order)}
}

// Get returns a copy of the order with the given ID
func (s *MemoryOrderStore) Get(id uint) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	copied := copyOrder(order)
	return &copied, nil
}

// Put stores the order, assigning a fresh ID if it has none
func (s *MemoryOrderStore) Put(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == 0 {
		s.nextID++
		order.ID = s.nextID
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
	} else if order.ID > s.nextID {
		s.nextID = order.ID
	}

	copied := copyOrder(order)
	s.orders[order.ID] = &copied
	return nil
}

// Update applies fn to the stored order under the store lock
func (s *MemoryOrderStore) Update(id uint, fn func(*models.Order) error) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	copied := copyOrder(order)
	return &copied, nil
}

// Values returns copies of all stored orders in unspecified iteration order
func (s *MemoryOrderStore) Values() ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		all = append(all, copyOrder(order))
	}
	return all, nil
}

// copyOrder deep-copies an order so callers never share the stored Items slice
func copyOrder(order *models.Order) models.Order {
	copied := *order
	copied.Items = make([]models.OrderItem, len(order.Items))
	copy(copied.Items, order.Items)
	return copied
}

// GormOrderStore is a database-backed OrderStore
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore creates an order store backed by the given database
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// Get returns the order with the given ID, including its line items
func (s *GormOrderStore) Get(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// Put stores the order; the database assigns the ID on first insert
func (s *GormOrderStore) Put(order *models.Order) error {
	if err := s.db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// Update applies fn to the order inside a transaction, holding a row lock
// where the database supports it
func (s *GormOrderStore) Update(id uint, fn func(*models.Order) error) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Preload("Items")
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load order %d: %w", id, err)
		}
		if err := fn(&order); err != nil {
			return err
		}
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to save order %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Values returns all stored orders including their line items
func (s *GormOrderStore) Values() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
