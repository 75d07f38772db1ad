package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/easyserve/easyserve-api/models"
	"github.com/easyserve/easyserve-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	RestaurantID        uint                      `json:"restaurant_id" binding:"required"`
	CustomerID          uint                      `json:"customer_id"`
	CustomerName        string                    `json:"customer_name" binding:"required"`
	CustomerEmail       string                    `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone       string                    `json:"customer_phone"`
	OrderType           string                    `json:"order_type" binding:"required"`
	Items               []services.OrderItemInput `json:"items" binding:"required"`
	SpecialInstructions string                    `json:"special_instructions"`
	DeliveryAddress     *string                   `json:"delivery_address"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelOrderRequest represents the request body for cancelling an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := services.GetOrderService().Create(services.CreateOrderInput{
		RestaurantID:        req.RestaurantID,
		CustomerID:          req.CustomerID,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		OrderType:           req.OrderType,
		Items:               req.Items,
		SpecialInstructions: req.SpecialInstructions,
		DeliveryAddress:     req.DeliveryAddress,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches a single order
func GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := services.GetOrderService().GetByID(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders matching the
// supplied query predicates (restaurant_id, status, type, from, to,
// customer_id), most recent first
func ListOrders(c *gin.Context) {
	var filter services.OrderFilter

	if v := c.Query("restaurant_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQuery(c, "restaurant_id must be a positive integer")
			return
		}
		restaurantID := uint(id)
		filter.RestaurantID = &restaurantID
	}
	if v := c.Query("status"); v != "" {
		if !models.ValidOrderStatus(v) {
			respondBadQuery(c, "unknown order status: "+v)
			return
		}
		status := models.OrderStatus(v)
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		if !models.ValidOrderType(v) {
			respondBadQuery(c, "unknown order type: "+v)
			return
		}
		orderType := models.OrderType(v)
		filter.OrderType = &orderType
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondBadQuery(c, "from must be an RFC3339 timestamp")
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondBadQuery(c, "to must be an RFC3339 timestamp")
			return
		}
		filter.To = &to
	}
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQuery(c, "customer_id must be a positive integer")
			return
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
	}

	orders, err := services.GetOrderService().Filter(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an
// order along the kitchen workflow
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := services.GetOrderService().UpdateStatus(orderID, models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels an order
// that has not yet left the kitchen
func CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := services.GetOrderService().Cancel(orderID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// parseIDParam extracts the :id path parameter as an unsigned integer,
// writing the error response itself when the parameter is malformed
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// respondBadQuery writes a validation error for a malformed query parameter
func respondBadQuery(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": message,
		},
	})
}
