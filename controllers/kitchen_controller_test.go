package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/easyserve/easyserve-api/services"
)

// setupKitchenStack wires order and kitchen services over a shared
// in-memory store and registers the kitchen routes
func setupKitchenStack(t *testing.T) *gin.Engine {
	t.Helper()

	store := services.NewMemoryOrderStore()
	clock := services.FixedClock{Time: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	orderService := services.NewOrderService(store, services.NewMockMenuService(), services.NewMockNotificationSink(), clock)
	statsService := services.NewKitchenStatsService(store, clock)

	previousOrders := services.GetOrderService()
	previousStats := services.GetKitchenStatsService()
	services.SetOrderService(orderService)
	services.SetKitchenStatsService(statsService)
	t.Cleanup(func() {
		services.SetOrderService(previousOrders)
		services.SetKitchenStatsService(previousStats)
	})

	router := setupTestRouter()
	router.POST("/api/v1/orders", CreateOrder)
	router.PATCH("/api/v1/orders/:id/status", UpdateOrderStatus)
	router.GET("/api/v1/kitchen/queue", KitchenQueue)
	router.GET("/api/v1/kitchen/stats", KitchenStats)
	return router
}

func TestKitchenQueueEndpoint(t *testing.T) {
	router := setupKitchenStack(t)

	created := decodeEnvelope(t, sendJSON(router, "POST", "/api/v1/orders", orderRequestBody()))
	id := int(created["data"].(map[string]interface{})["id"].(float64))
	sendJSON(router, "POST", "/api/v1/orders", orderRequestBody())

	// Move the first order into PREPARING; both remain queue members
	sendJSON(router, "PATCH", fmt.Sprintf("/api/v1/orders/%d/status", id), map[string]string{"status": "CONFIRMED"})
	sendJSON(router, "PATCH", fmt.Sprintf("/api/v1/orders/%d/status", id), map[string]string{"status": "PREPARING"})

	w := getJSON(router, "/api/v1/kitchen/queue?restaurant_id=1")

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	queue := response["data"].([]interface{})
	assert.Len(t, queue, 2)

	t.Run("ready orders drop out", func(t *testing.T) {
		sendJSON(router, "PATCH", fmt.Sprintf("/api/v1/orders/%d/status", id), map[string]string{"status": "READY"})

		w := getJSON(router, "/api/v1/kitchen/queue?restaurant_id=1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeEnvelope(t, w)["data"], 1)
	})

	t.Run("missing restaurant_id", func(t *testing.T) {
		w := getJSON(router, "/api/v1/kitchen/queue")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestKitchenStatsEndpoint(t *testing.T) {
	router := setupKitchenStack(t)

	created := decodeEnvelope(t, sendJSON(router, "POST", "/api/v1/orders", orderRequestBody()))
	id := int(created["data"].(map[string]interface{})["id"].(float64))
	sendJSON(router, "POST", "/api/v1/orders", orderRequestBody())

	for _, status := range []string{"CONFIRMED", "PREPARING", "READY", "COMPLETED"} {
		sendJSON(router, "PATCH", fmt.Sprintf("/api/v1/orders/%d/status", id), map[string]string{"status": status})
	}

	w := getJSON(router, "/api/v1/kitchen/stats?restaurant_id=1")

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_active_orders"])
	assert.Equal(t, float64(1), data["orders_completed"])
	assert.Equal(t, float64(2), data["total_orders_today"])
	assert.Equal(t, float64(0), data["orders_in_preparation"])

	t.Run("empty restaurant yields zeros", func(t *testing.T) {
		w := getJSON(router, "/api/v1/kitchen/stats?restaurant_id=7")
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeEnvelope(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["total_orders_today"])
		assert.Equal(t, float64(0), data["average_prep_minutes"])
	})
}
