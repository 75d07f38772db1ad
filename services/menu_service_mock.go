package services

import (
	"fmt"
	"sync"
)

// MockMenuService is an in-memory MenuPriceLookup for testing
type MockMenuService struct {
	mu     sync.RWMutex
	prices map[uint]float64
}

// NewMockMenuService creates a mock menu seeded with a small sample menu
func NewMockMenuService() *MockMenuService {
	return &MockMenuService{
		prices: map[uint]float64{
			1: 12.99, // Burger
			2: 8.99,  // Pizza
			3: 6.99,  // Salad
			4: 4.99,  // Fries
			5: 2.99,  // Drink
		},
	}
}

// Price returns the seeded price for the given menu item ID
func (m *MockMenuService) Price(menuItemID uint) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	price, ok := m.prices[menuItemID]
	if !ok {
		return 0, fmt.Errorf("menu item %d: %w", menuItemID, ErrItemNotFound)
	}
	return price, nil
}

// SetPrice sets or overrides the price for a menu item
func (m *MockMenuService) SetPrice(menuItemID uint, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[menuItemID] = price
}

// RemoveItem deletes a menu item from the mock menu
func (m *MockMenuService) RemoveItem(menuItemID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.prices, menuItemID)
}
