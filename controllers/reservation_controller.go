package controllers

import (
	"net/http"
	"strconv"

	"github.com/easyserve/easyserve-api/models"
	"github.com/easyserve/easyserve-api/services"
	"github.com/gin-gonic/gin"
)

// CreateReservationRequest represents the request body for booking a table
type CreateReservationRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone   string `json:"customer_phone"`
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationTime string `json:"reservation_time" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required"`
	Source          string `json:"source"`
	SpecialRequests string `json:"special_requests"`
}

// UpdateReservationRequest represents the request body for modifying a reservation
type UpdateReservationRequest struct {
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationTime string `json:"reservation_time" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

// CancelReservationRequest represents the request body for cancelling a reservation
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// SeatReservationRequest carries the table the host assigns at seating
type SeatReservationRequest struct {
	TableNumber *int `json:"table_number"`
}

// CreateReservation handles POST /api/v1/reservations - books a table
func CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
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

	reservation, err := services.GetReservationService().Create(services.CreateReservationInput{
		RestaurantID:    req.RestaurantID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		Source:          req.Source,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// GetReservation handles GET /api/v1/reservations/:id
func GetReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := services.GetReservationService().GetByID(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ListReservations handles GET /api/v1/reservations - lists reservations
// matching the supplied query predicates (restaurant_id, from, to, status,
// customer_email), ordered by date then time
func ListReservations(c *gin.Context) {
	var filter services.ReservationFilter

	if v := c.Query("restaurant_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQuery(c, "restaurant_id must be a positive integer")
			return
		}
		restaurantID := uint(id)
		filter.RestaurantID = &restaurantID
	}
	if v := c.Query("from"); v != "" {
		from := v
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to := v
		filter.To = &to
	}
	if v := c.Query("status"); v != "" {
		if !models.ValidReservationStatus(v) {
			respondBadQuery(c, "unknown reservation status: "+v)
			return
		}
		status := models.ReservationStatus(v)
		filter.Status = &status
	}
	if v := c.Query("customer_email"); v != "" {
		email := v
		filter.CustomerEmail = &email
	}

	reservations, err := services.GetReservationService().Filter(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// UpdateReservation handles PUT /api/v1/reservations/:id - modifies date,
// time, party size and special requests
func UpdateReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
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

	reservation, err := services.GetReservationService().Update(reservationID, services.UpdateReservationInput{
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel
func CancelReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Reason is optional; an empty body cancels without a note
	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	reservation, err := services.GetReservationService().Cancel(reservationID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ConfirmReservation handles POST /api/v1/reservations/:id/confirm
func ConfirmReservation(c *gin.Context) {
	transitionReservation(c, services.GetReservationService().Confirm)
}

// SeatReservation handles POST /api/v1/reservations/:id/seat - an optional
// body assigns the party's table
func SeatReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Table assignment is optional; an empty body seats without one
	var req SeatReservationRequest
	_ = c.ShouldBindJSON(&req)

	reservation, err := services.GetReservationService().Seat(reservationID, req.TableNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// CompleteReservation handles POST /api/v1/reservations/:id/complete
func CompleteReservation(c *gin.Context) {
	transitionReservation(c, services.GetReservationService().Complete)
}

// NoShowReservation handles POST /api/v1/reservations/:id/no-show
func NoShowReservation(c *gin.Context) {
	transitionReservation(c, services.GetReservationService().NoShow)
}

func transitionReservation(c *gin.Context, fn func(uint) (*models.Reservation, error)) {
	reservationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := fn(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// CheckAvailability handles GET /api/v1/reservations/availability - a pure
// query reporting whether a slot is free
func CheckAvailability(c *gin.Context) {
	restaurantID, ok := parseRestaurantQuery(c)
	if !ok {
		return
	}

	date := c.Query("date")
	timeOfDay := c.Query("time")
	available, err := services.GetReservationService().CheckAvailability(restaurantID, date, timeOfDay)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"restaurant_id": restaurantID,
			"date":          date,
			"time":          timeOfDay,
			"available":     available,
		},
	})
}

// AvailableSlots handles GET /api/v1/reservations/slots - lists the free
// slots of the daily booking grid for a date
func AvailableSlots(c *gin.Context) {
	restaurantID, ok := parseRestaurantQuery(c)
	if !ok {
		return
	}

	date := c.Query("date")
	slots, err := services.GetReservationService().AvailableSlots(restaurantID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"restaurant_id": restaurantID,
			"date":          date,
			"slots":         slots,
		},
	})
}

// parseRestaurantQuery extracts the restaurant_id query parameter, writing
// the error response itself when it is missing or malformed
func parseRestaurantQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)
	if err != nil || id == 0 {
		respondBadQuery(c, "restaurant_id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
