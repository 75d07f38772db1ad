package controllers

import (
	"net/http"

	"github.com/easyserve/easyserve-api/services"
	"github.com/gin-gonic/gin"
)

// KitchenQueue handles GET /api/v1/kitchen/queue - returns a restaurant's
// active orders in expo-screen order (earliest estimated-ready first)
func KitchenQueue(c *gin.Context) {
	restaurantID, ok := parseRestaurantQuery(c)
	if !ok {
		return
	}

	queue, err := services.GetOrderService().KitchenQueue(restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    queue,
	})
}

// KitchenStats handles GET /api/v1/kitchen/stats - returns the live
// operational counters and average preparation time for today
func KitchenStats(c *gin.Context) {
	restaurantID, ok := parseRestaurantQuery(c)
	if !ok {
		return
	}

	stats, err := services.GetKitchenStatsService().Snapshot(restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
