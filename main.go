package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/easyserve/easyserve-api/config"
	"github.com/easyserve/easyserve-api/controllers"
	"github.com/easyserve/easyserve-api/middleware"
	"github.com/easyserve/easyserve-api/models"
	"github.com/easyserve/easyserve-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting EasyServe API server...")

	// Load application configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize domain services against the live database
	services.InitServices(db)

	// Initialize S3-backed image storage for menu item photos
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	// Initialize Gin router
	router := gin.Default()

	// CORS for browser-based clients
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Menu browsing is public
		v1.GET("/menu-items", controllers.ListMenuItems)
		v1.GET("/menu-items/:id", controllers.GetMenuItem)

		// Reservation availability is public so guests can browse slots
		v1.GET("/reservations/availability", controllers.CheckAvailability)
		v1.GET("/reservations/slots", controllers.AvailableSlots)

		// Everything else requires a valid Auth0 token
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			authed.POST("/orders", controllers.CreateOrder)
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			authed.POST("/orders/:id/cancel", controllers.CancelOrder)

			authed.POST("/reservations", controllers.CreateReservation)
			authed.GET("/reservations", controllers.ListReservations)
			authed.GET("/reservations/:id", controllers.GetReservation)
			authed.PUT("/reservations/:id", controllers.UpdateReservation)
			authed.POST("/reservations/:id/cancel", controllers.CancelReservation)
			authed.POST("/reservations/:id/confirm", controllers.ConfirmReservation)
			authed.POST("/reservations/:id/seat", controllers.SeatReservation)
			authed.POST("/reservations/:id/complete", controllers.CompleteReservation)
			authed.POST("/reservations/:id/no-show", controllers.NoShowReservation)

			staff := authed.Group("", middleware.RequireRole("staff"))
			staff.GET("/kitchen/queue", controllers.KitchenQueue)
			staff.GET("/kitchen/stats", controllers.KitchenStats)

			authed.POST("/menu-items", controllers.CreateMenuItem)
			authed.PUT("/menu-items/:id", controllers.UpdateMenuItem)
			authed.POST("/menu-items/:id/image", controllers.UploadMenuItemImage)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "EasyServe API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
