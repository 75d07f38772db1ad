package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/easyserve/easyserve-api/models"
)

const (
	// TaxRate is the fixed tax multiplier applied to every order subtotal
	TaxRate = 0.10

	// PrepTimeOffset is the fixed estimate between ordering and readiness
	PrepTimeOffset = 30 * time.Minute
)

// OrderItemInput is a requested line item in an order draft
type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderInput is the draft an order is created from. Prices are never
// taken from the caller; they are resolved through the menu lookup.
type CreateOrderInput struct {
	RestaurantID        uint
	CustomerID          uint
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	OrderType           string
	Items               []OrderItemInput
	SpecialInstructions string
	DeliveryAddress     *string
}

// OrderFilter holds optional predicates for listing orders. Nil fields
// impose no filter; supplied fields are ANDed together. The creation-time
// bounds are half-open: From inclusive, To exclusive.
type OrderFilter struct {
	RestaurantID *uint
	Status       *models.OrderStatus
	OrderType    *models.OrderType
	From         *time.Time
	To           *time.Time
	CustomerID   *uint
}

// OrderService owns the order lifecycle: creation with pricing, status
// transitions, cancellation, and the read queries the kitchen and
// dashboard need. All mutation goes through the injected OrderStore.
type OrderService struct {
	store         OrderStore
	menu          MenuPriceLookup
	notifications NotificationSink
	clock         Clock
}

// NewOrderService creates an order lifecycle service
func NewOrderService(store OrderStore, menu MenuPriceLookup, notifications NotificationSink, clock Clock) *OrderService {
	return &OrderService{
		store:         store,
		menu:          menu,
		notifications: notifications,
		clock:         clock,
	}
}

// Create validates the draft, prices it against the menu, and persists a
// NEW order. A confirmation notification is dispatched best-effort.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := models.Order{
		RestaurantID:        input.RestaurantID,
		CustomerID:          input.CustomerID,
		CustomerName:        input.CustomerName,
		CustomerEmail:       input.CustomerEmail,
		CustomerPhone:       input.CustomerPhone,
		OrderType:           models.OrderType(input.OrderType),
		Status:              models.OrderStatusNew,
		SpecialInstructions: input.SpecialInstructions,
		DeliveryAddress:     input.DeliveryAddress,
		EstimatedReady:      now.Add(PrepTimeOffset),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	subtotal := 0.0
	for _, item := range input.Items {
		price, err := s.menu.Price(item.MenuItemID)
		if err != nil {
			return nil, err
		}
		lineTotal := round2(price * float64(item.Quantity))
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  price,
			LineTotal:  lineTotal,
		})
		subtotal += price * float64(item.Quantity)
	}
	order.Subtotal = round2(subtotal)
	order.Tax = round2(order.Subtotal * TaxRate)
	order.Total = round2(order.Subtotal + order.Tax)

	if err := s.store.Put(&order); err != nil {
		return nil, err
	}

	dispatch(s.notifications, NotificationEvent{
		Type:    NotificationOrderConfirmed,
		Email:   order.CustomerEmail,
		Phone:   order.CustomerPhone,
		OrderID: order.ID,
		Message: fmt.Sprintf("Order #%d received, estimated ready at %s", order.ID, order.EstimatedReady.Format("15:04")),
	})

	return &order, nil
}

// GetByID returns the order with the given ID
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	return s.store.Get(orderID)
}

// UpdateStatus moves the order to target if the transition table allows it
// from the current status, then dispatches a status-change notification
func (s *OrderService) UpdateStatus(orderID uint, target models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(string(target)) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, target)
	}

	order, err := s.store.Update(orderID, func(order *models.Order) error {
		if !order.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
		}
		now := s.clock.Now()
		order.Status = target
		order.UpdatedAt = now
		if target == models.OrderStatusCompleted {
			completed := now
			order.CompletedAt = &completed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatch(s.notifications, NotificationEvent{
		Type:    NotificationOrderStatusChanged,
		Email:   order.CustomerEmail,
		Phone:   order.CustomerPhone,
		OrderID: order.ID,
		Message: fmt.Sprintf("Order #%d status updated to %s", order.ID, order.Status),
	})

	return order, nil
}

// Cancel cancels an order that has not yet left the kitchen, recording the
// reason in its special instructions. Orders in READY or a terminal status
// cannot be cancelled.
func (s *OrderService) Cancel(orderID uint, reason string) (*models.Order, error) {
	order, err := s.store.Update(orderID, func(order *models.Order) error {
		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusCancelled)
		}
		order.Status = models.OrderStatusCancelled
		order.SpecialInstructions = appendNote(order.SpecialInstructions, "Cancelled: "+reason)
		order.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatch(s.notifications, NotificationEvent{
		Type:    NotificationOrderCancelled,
		Email:   order.CustomerEmail,
		Phone:   order.CustomerPhone,
		OrderID: order.ID,
		Message: fmt.Sprintf("Order #%d has been cancelled", order.ID),
	})

	return order, nil
}

// Filter returns all orders matching every supplied predicate, most
// recently created first. An empty result is not an error.
func (s *OrderService) Filter(filter OrderFilter) ([]models.Order, error) {
	orders, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if filter.RestaurantID != nil && order.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.OrderType != nil && order.OrderType != *filter.OrderType {
			continue
		}
		if filter.From != nil && order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !order.CreatedAt.Before(*filter.To) {
			continue
		}
		if filter.CustomerID != nil && order.CustomerID != *filter.CustomerID {
			continue
		}
		matched = append(matched, order)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// KitchenQueue returns a restaurant's active orders in the order the expo
// screen shows them: earliest estimated-ready time first
func (s *OrderService) KitchenQueue(restaurantID uint) ([]models.Order, error) {
	orders, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	queue := make([]models.Order, 0)
	for _, order := range orders {
		if order.RestaurantID == restaurantID && order.Status.IsActive() {
			queue = append(queue, order)
		}
	}

	sort.Slice(queue, func(i, j int) bool {
		if queue[i].EstimatedReady.Equal(queue[j].EstimatedReady) {
			return queue[i].ID < queue[j].ID
		}
		return queue[i].EstimatedReady.Before(queue[j].EstimatedReady)
	})
	return queue, nil
}

// TodaysOrders returns all of a restaurant's orders created today, newest first
func (s *OrderService) TodaysOrders(restaurantID uint) ([]models.Order, error) {
	start, end := dayBounds(s.clock.Now())
	return s.Filter(OrderFilter{
		RestaurantID: &restaurantID,
		From:         &start,
		To:           &end,
	})
}

// TotalRevenueToday sums the totals of today's completed orders
func (s *OrderService) TotalRevenueToday(restaurantID uint) (float64, error) {
	orders, err := s.TodaysOrders(restaurantID)
	if err != nil {
		return 0, err
	}

	revenue := 0.0
	for _, order := range orders {
		if order.Status == models.OrderStatusCompleted {
			revenue += order.Total
		}
	}
	return round2(revenue), nil
}

// AverageOrderValue returns the mean total across a restaurant's completed
// orders, zero when none have completed
func (s *OrderService) AverageOrderValue(restaurantID uint) (float64, error) {
	orders, err := s.store.Values()
	if err != nil {
		return 0, err
	}

	sum := 0.0
	count := 0
	for _, order := range orders {
		if order.RestaurantID == restaurantID && order.Status == models.OrderStatusCompleted {
			sum += order.Total
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return round2(sum / float64(count)), nil
}

func validateOrderInput(input CreateOrderInput) error {
	if input.RestaurantID == 0 {
		return fmt.Errorf("%w: restaurant_id is required", ErrValidation)
	}
	if input.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if !models.ValidOrderType(input.OrderType) {
		return fmt.Errorf("%w: order_type must be one of PICKUP, DELIVERY, DINE_IN", ErrValidation)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrValidation, i)
		}
	}
	if models.OrderType(input.OrderType) == models.OrderTypeDelivery {
		if input.DeliveryAddress == nil || *input.DeliveryAddress == "" {
			return fmt.Errorf("%w: delivery_address is required for delivery orders", ErrValidation)
		}
	} else if input.DeliveryAddress != nil {
		return fmt.Errorf("%w: delivery_address is only allowed for delivery orders", ErrValidation)
	}
	return nil
}

// appendNote appends a note to a free-text field, separating entries with " | "
func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}

// round2 rounds a monetary amount to 2 decimal places
func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// dayBounds returns the start and end instants of the day containing t
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
