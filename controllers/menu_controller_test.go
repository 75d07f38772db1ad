package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/easyserve/easyserve-api/config"
	"github.com/easyserve/easyserve-api/models"
	"github.com/easyserve/easyserve-api/services"
)

// setupMenuStack wires a sqlite database, a mock image service and a
// router whose routes run behind the mock auth middleware
func setupMenuStack(t *testing.T, role string) (*gin.Engine, *gorm.DB, *services.MockImageService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.MenuItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)

	user := models.User{Auth0ID: "auth0|staffer", Name: "Robin Vega", Email: "robin@example.com", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	imageService := services.NewMockImageService()
	imageService.SetAsMockForTesting()
	t.Cleanup(func() { services.SetImageService(nil) })

	router := setupTestRouter()
	authed := router.Group("", mockAuthMiddleware("auth0|staffer", role, "test-token"))
	authed.POST("/api/v1/menu-items", CreateMenuItem)
	authed.PUT("/api/v1/menu-items/:id", UpdateMenuItem)
	authed.POST("/api/v1/menu-items/:id/image", UploadMenuItemImage)
	router.GET("/api/v1/menu-items", ListMenuItems)
	router.GET("/api/v1/menu-items/:id", GetMenuItem)
	return router, db, imageService
}

func menuItemRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Margherita Pizza",
		"description":   "Tomato, mozzarella, basil",
		"category":      "Mains",
		"price":         12.99,
	}
}

func TestCreateMenuItemEndpoint(t *testing.T) {
	router, _, _ := setupMenuStack(t, "staff")

	w := sendJSON(router, "POST", "/api/v1/menu-items", menuItemRequestBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Margherita Pizza", data["name"])
	assert.Equal(t, 12.99, data["price"])
	assert.Equal(t, true, data["available"])
}

func TestCreateMenuItemRequiresStaff(t *testing.T) {
	router, _, _ := setupMenuStack(t, "customer")

	w := sendJSON(router, "POST", "/api/v1/menu-items", menuItemRequestBody())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(decodeEnvelope(t, w)))
}

func TestCreateMenuItemRejectsZeroPrice(t *testing.T) {
	router, _, _ := setupMenuStack(t, "staff")

	body := menuItemRequestBody()
	body["price"] = 0

	w := sendJSON(router, "POST", "/api/v1/menu-items", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuManagementScopedToAssignedRestaurant(t *testing.T) {
	router, db, _ := setupMenuStack(t, "staff")

	assigned := uint(3)
	assert.NoError(t, db.Model(&models.User{}).Where("auth0_id = ?", "auth0|staffer").
		Update("restaurant_id", assigned).Error)

	t.Run("create for own restaurant", func(t *testing.T) {
		body := menuItemRequestBody()
		body["restaurant_id"] = 3

		w := sendJSON(router, "POST", "/api/v1/menu-items", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create for another restaurant", func(t *testing.T) {
		body := menuItemRequestBody()
		body["restaurant_id"] = 9

		w := sendJSON(router, "POST", "/api/v1/menu-items", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "WRONG_RESTAURANT", errorCode(decodeEnvelope(t, w)))
	})

	t.Run("edit another restaurant's item", func(t *testing.T) {
		foreign := models.MenuItem{RestaurantID: 9, Name: "Gnocchi", Price: 13.49, Available: true}
		assert.NoError(t, db.Create(&foreign).Error)

		w := sendJSON(router, "PUT", fmt.Sprintf("/api/v1/menu-items/%d", foreign.ID), map[string]interface{}{
			"price": 15.99,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "WRONG_RESTAURANT", errorCode(decodeEnvelope(t, w)))
	})
}

func TestListMenuItemsEndpoint(t *testing.T) {
	router, db, _ := setupMenuStack(t, "staff")

	seed := func(name, category string, available bool) {
		item := models.MenuItem{RestaurantID: 1, Name: name, Category: category, Price: 9.99, Available: available}
		assert.NoError(t, db.Create(&item).Error)
	}
	seed("Espresso", "Drinks", true)
	seed("Tiramisu", "Desserts", true)
	seed("Old Special", "Mains", false)

	t.Run("all items", func(t *testing.T) {
		w := getJSON(router, "/api/v1/menu-items?restaurant_id=1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeEnvelope(t, w)["data"], 3)
	})

	t.Run("by category", func(t *testing.T) {
		w := getJSON(router, "/api/v1/menu-items?restaurant_id=1&category=Drinks")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeEnvelope(t, w)["data"], 1)
	})

	t.Run("available only", func(t *testing.T) {
		w := getJSON(router, "/api/v1/menu-items?restaurant_id=1&available=true")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeEnvelope(t, w)["data"], 2)
	})
}

func TestUpdateMenuItemEndpoint(t *testing.T) {
	router, db, _ := setupMenuStack(t, "staff")

	item := models.MenuItem{RestaurantID: 1, Name: "Espresso", Price: 2.99, Available: true}
	assert.NoError(t, db.Create(&item).Error)

	available := false
	price := 3.49
	w := sendJSON(router, "PUT", fmt.Sprintf("/api/v1/menu-items/%d", item.ID), map[string]interface{}{
		"price":     price,
		"available": available,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.MenuItem
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 3.49, reloaded.Price)
	assert.False(t, reloaded.Available)
}

func TestUploadMenuItemImageEndpoint(t *testing.T) {
	router, db, imageService := setupMenuStack(t, "staff")

	item := models.MenuItem{RestaurantID: 1, Name: "Espresso", Price: 2.99, Available: true}
	assert.NoError(t, db.Create(&item).Error)

	upload := func(filename string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, _ := writer.CreateFormFile("image", filename)
		part.Write([]byte("fake png bytes"))
		writer.Close()

		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/menu-items/%d/image", item.ID), &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("png upload succeeds", func(t *testing.T) {
		w := upload("espresso.png")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "uploads/mock_espresso.png", data["image_s3_key"])
		assert.Contains(t, data["image_url"], "uploads/mock_espresso.png")
		assert.True(t, imageService.ImageExists("uploads/mock_espresso.png"))
	})

	t.Run("non-png rejected", func(t *testing.T) {
		w := upload("espresso.gif")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/menu-items/%d/image", item.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_FILE", errorCode(decodeEnvelope(t, w)))
	})
}

func TestGetMenuItemEndpoint(t *testing.T) {
	router, db, _ := setupMenuStack(t, "staff")

	item := models.MenuItem{RestaurantID: 1, Name: "Espresso", Price: 2.99, Available: true}
	assert.NoError(t, db.Create(&item).Error)

	w := getJSON(router, fmt.Sprintf("/api/v1/menu-items/%d", item.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Espresso", data["name"])

	missing := getJSON(router, "/api/v1/menu-items/999")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
