package services

import (
	"errors"
	"fmt"

	"github.com/easyserve/easyserve-api/models"
	"gorm.io/gorm"
)

// MenuPriceLookup resolves a menu item ID to its current unit price.
// Order pricing happens against this seam so the lifecycle never touches
// the menu storage directly.
type MenuPriceLookup interface {
	Price(menuItemID uint) (float64, error)
}

// GormMenuService resolves prices from the menu_items table
type GormMenuService struct {
	db *gorm.DB
}

// NewGormMenuService creates a menu price lookup backed by the given database
func NewGormMenuService(db *gorm.DB) *GormMenuService {
	return &GormMenuService{db: db}
}

// Price returns the unit price of the menu item with the given ID
func (s *GormMenuService) Price(menuItemID uint) (float64, error) {
	var item models.MenuItem
	if err := s.db.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("menu item %d: %w", menuItemID, ErrItemNotFound)
		}
		return 0, fmt.Errorf("failed to load menu item %d: %w", menuItemID, err)
	}
	return item.Price, nil
}
