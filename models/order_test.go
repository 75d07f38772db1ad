package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableName(t *testing.T) {
	order := Order{}
	assert.Equal(t, "orders", order.TableName(), "Table name should be 'orders'")
}

func TestValidOrderStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
	}{
		{"new", "NEW", true},
		{"confirmed", "CONFIRMED", true},
		{"preparing", "PREPARING", true},
		{"ready", "READY", true},
		{"completed", "COMPLETED", true},
		{"cancelled", "CANCELLED", true},
		{"unknown", "SHIPPED", false},
		{"empty", "", false},
		{"lowercase", "new", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidOrderStatus(tt.status))
		})
	}
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"new to confirmed", OrderStatusNew, OrderStatusConfirmed, true},
		{"new to cancelled", OrderStatusNew, OrderStatusCancelled, true},
		{"new to preparing skips confirmation", OrderStatusNew, OrderStatusPreparing, false},
		{"confirmed to preparing", OrderStatusConfirmed, OrderStatusPreparing, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"confirmed to ready skips preparing", OrderStatusConfirmed, OrderStatusReady, false},
		{"preparing to ready", OrderStatusPreparing, OrderStatusReady, true},
		{"preparing to cancelled", OrderStatusPreparing, OrderStatusCancelled, true},
		{"ready to completed", OrderStatusReady, OrderStatusCompleted, true},
		{"ready cannot be cancelled", OrderStatusReady, OrderStatusCancelled, false},
		{"completed is terminal", OrderStatusCompleted, OrderStatusNew, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusConfirmed, false},
		{"no self transition", OrderStatusConfirmed, OrderStatusConfirmed, false},
		{"no backwards transition", OrderStatusReady, OrderStatusPreparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusNew.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusPreparing.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
}

func TestOrderStatusIsActive(t *testing.T) {
	// Active means the kitchen still has work to do on the order.
	assert.True(t, OrderStatusNew.IsActive())
	assert.True(t, OrderStatusConfirmed.IsActive())
	assert.True(t, OrderStatusPreparing.IsActive())
	assert.False(t, OrderStatusReady.IsActive())
	assert.False(t, OrderStatusCompleted.IsActive())
	assert.False(t, OrderStatusCancelled.IsActive())
}

func TestValidOrderType(t *testing.T) {
	tests := []struct {
		name      string
		orderType string
		valid     bool
	}{
		{"pickup", "PICKUP", true},
		{"delivery", "DELIVERY", true},
		{"dine in", "DINE_IN", true},
		{"unknown", "DRIVE_THROUGH", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidOrderType(tt.orderType))
		})
	}
}
