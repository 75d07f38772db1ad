package models

// KitchenStats is a point-in-time snapshot of a restaurant's kitchen
// activity, recomputed on every query. AveragePrepMinutes is the mean
// elapsed time between creation and completion for orders completed
// today, zero when nothing has completed yet.
type KitchenStats struct {
	TotalActiveOrders   int     `json:"total_active_orders"`
	OrdersInPreparation int     `json:"orders_in_preparation"`
	OrdersReady         int     `json:"orders_ready"`
	OrdersCompleted     int     `json:"orders_completed"`
	TotalOrdersToday    int     `json:"total_orders_today"`
	AveragePrepMinutes  float64 `json:"average_prep_minutes"`
}
