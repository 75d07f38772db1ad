package services

import (
	"github.com/easyserve/easyserve-api/models"
)

// KitchenStatsService derives live operational metrics from the order
// store. It is a read-only consumer: every Snapshot recomputes from
// current order state and has no side effects.
type KitchenStatsService struct {
	store OrderStore
	clock Clock
}

// NewKitchenStatsService creates a kitchen stats aggregator
func NewKitchenStatsService(store OrderStore, clock Clock) *KitchenStatsService {
	return &KitchenStatsService{store: store, clock: clock}
}

// Snapshot partitions today's orders for the restaurant into activity
// buckets and computes the average preparation time of orders completed
// today. A restaurant with no orders yields all-zero counts, not an error.
func (s *KitchenStatsService) Snapshot(restaurantID uint) (*models.KitchenStats, error) {
	orders, err := s.store.Values()
	if err != nil {
		return nil, err
	}

	start, end := dayBounds(s.clock.Now())
	stats := models.KitchenStats{}
	prepTotal := 0.0
	prepCount := 0

	for _, order := range orders {
		if order.RestaurantID != restaurantID {
			continue
		}
		if order.CreatedAt.Before(start) || !order.CreatedAt.Before(end) {
			continue
		}
		stats.TotalOrdersToday++

		switch {
		case order.Status.IsActive():
			stats.TotalActiveOrders++
		case order.Status == models.OrderStatusReady:
			stats.OrdersReady++
		}
		if order.Status == models.OrderStatusPreparing {
			stats.OrdersInPreparation++
		}
		if order.Status == models.OrderStatusCompleted {
			stats.OrdersCompleted++
			if order.CompletedAt != nil {
				prepTotal += order.CompletedAt.Sub(order.CreatedAt).Minutes()
				prepCount++
			}
		}
	}

	if prepCount > 0 {
		stats.AveragePrepMinutes = round2(prepTotal / float64(prepCount))
	}
	return &stats, nil
}
