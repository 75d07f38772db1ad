package services

import "gorm.io/gorm"

// Package-level service instances, initialized once at startup and
// swappable in tests (mirrors the S3 service singleton).
var (
	orderServiceInstance       *OrderService
	reservationServiceInstance *ReservationService
	kitchenStatsInstance       *KitchenStatsService
)

// InitServices wires the lifecycle services against database-backed stores
func InitServices(db *gorm.DB) {
	clock := SystemClock{}
	sink := LogNotificationSink{}
	orderStore := NewGormOrderStore(db)

	orderServiceInstance = NewOrderService(orderStore, NewGormMenuService(db), sink, clock)
	reservationServiceInstance = NewReservationService(NewGormReservationStore(db), sink, clock)
	kitchenStatsInstance = NewKitchenStatsService(orderStore, clock)
}

// GetOrderService returns the initialized order lifecycle service
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s *OrderService) {
	orderServiceInstance = s
}

// GetReservationService returns the initialized reservation lifecycle service
func GetReservationService() *ReservationService {
	return reservationServiceInstance
}

// SetReservationService sets the reservation service instance (primarily for testing)
func SetReservationService(s *ReservationService) {
	reservationServiceInstance = s
}

// GetKitchenStatsService returns the initialized kitchen stats aggregator
func GetKitchenStatsService() *KitchenStatsService {
	return kitchenStatsInstance
}

// SetKitchenStatsService sets the kitchen stats instance (primarily for testing)
func SetKitchenStatsService(s *KitchenStatsService) {
	kitchenStatsInstance = s
}
