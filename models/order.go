package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderType represents how an order will be fulfilled
type OrderType string

const (
	OrderTypePickup   OrderType = "PICKUP"
	OrderTypeDelivery OrderType = "DELIVERY"
	OrderTypeDineIn   OrderType = "DINE_IN"
)

// ValidOrderType reports whether s is a member of the order type enumeration
func ValidOrderType(s string) bool {
	switch OrderType(s) {
	case OrderTypePickup, OrderTypeDelivery, OrderTypeDineIn:
		return true
	}
	return false
}

// OrderStatus represents the status of an order in the kitchen workflow
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the closed transition table for order statuses.
// Terminal statuses map to an empty slice.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:       {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s is a member of the order status enumeration
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// CanTransitionTo reports whether the status change from s to target is
// permitted by the order state machine
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return ValidOrderStatus(string(s)) && len(orderTransitions[s]) == 0
}

// IsActive reports whether an order in status s still needs kitchen attention
func (s OrderStatus) IsActive() bool {
	return s == OrderStatusNew || s == OrderStatusConfirmed || s == OrderStatusPreparing
}

// OrderItem represents a single line item in an order
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	Quantity   int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	LineTotal  float64 `gorm:"not null" json:"line_total"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents a customer order in the system
type Order struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	RestaurantID        uint           `gorm:"not null;index" json:"restaurant_id"`
	CustomerID          uint           `gorm:"index" json:"customer_id"`
	CustomerName        string         `gorm:"not null" json:"customer_name"`
	CustomerEmail       string         `json:"customer_email"`
	CustomerPhone       string         `json:"customer_phone"`
	OrderType           OrderType      `gorm:"not null" json:"order_type"`
	Status              OrderStatus    `gorm:"not null;default:'NEW';index" json:"status"`
	Items               []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal            float64        `gorm:"not null" json:"subtotal"`
	Tax                 float64        `gorm:"not null" json:"tax"`
	Total               float64        `gorm:"not null" json:"total"`
	EstimatedReady      time.Time      `json:"estimated_ready"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions"`
	DeliveryAddress     *string        `json:"delivery_address,omitempty"` // present iff OrderType is DELIVERY
	CompletedAt         *time.Time     `json:"completed_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
