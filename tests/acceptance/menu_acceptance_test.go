package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/easyserve/easyserve-api/config"
	"github.com/easyserve/easyserve-api/controllers"
	"github.com/easyserve/easyserve-api/middleware"
	"github.com/easyserve/easyserve-api/models"
	"github.com/easyserve/easyserve-api/services"
	"github.com/easyserve/easyserve-api/tests/testutil"
)

// MenuAcceptanceTestSuite drives menu management through a real HTTP server:
// a manager builds the menu and attaches photos, diners browse it
type MenuAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
	mockS3 *services.MockS3Service
}

// SetupSuite runs once before all tests
func (suite *MenuAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// Set test environment
	testutil.MustSetTestEnvironment(suite.T())
	os.Setenv("AUTH0_DOMAIN", "test.auth0.com")
	os.Setenv("AUTH0_AUDIENCE", "https://api.test.com")
	os.Setenv("PORT", "8080")

	_, err := config.Load()
	suite.NoError(err)

	// Setup database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.User{}, &models.MenuItem{})
	suite.NoError(err)

	config.SetDB(db)

	// Real image service over mock S3 storage
	suite.mockS3 = services.NewMockS3Service()
	suite.mockS3.SetAsMockForTesting()
	services.InitImageService(suite.mockS3)

	// Create test server
	router := suite.createRouter()
	suite.server = httptest.NewServer(router)
}

// TearDownSuite runs once after all tests
func (suite *MenuAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	services.SetImageService(nil)
	services.SetS3Service(nil)
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest runs before each test
func (suite *MenuAcceptanceTestSuite) SetupTest() {
	testutil.RequireTestEnvironment(suite.T())

	// Clean up database and mock storage before each test
	suite.db.Exec("DELETE FROM menu_items")
	suite.db.Exec("DELETE FROM users")
	suite.mockS3.Clear()

	suite.NoError(suite.db.Create(&models.User{
		Auth0ID: "auth0|manager",
		Email:   "manager@easyserve.test",
		Name:    "Morgan Reyes",
		Role:    "staff",
	}).Error)
}

// createRouter creates the full application router for acceptance testing
func (suite *MenuAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		// Public browsing routes
		v1.GET("/menu-items", controllers.ListMenuItems)
		v1.GET("/menu-items/:id", controllers.GetMenuItem)

		// Manager routes (using mock auth for acceptance testing)
		staff := v1.Group("", suite.mockAuthMiddleware("auth0|manager", "staff"))
		staff.POST("/menu-items", controllers.CreateMenuItem)
		staff.PUT("/menu-items/:id", controllers.UpdateMenuItem)
		staff.POST("/menu-items/:id/image", controllers.UploadMenuItemImage)
	}

	return router
}

// mockAuthMiddleware simulates authentication for acceptance testing
func (suite *MenuAcceptanceTestSuite) mockAuthMiddleware(auth0ID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("access_token", "mock-token")

		customClaims := &middleware.CustomClaims{
			Role: role,
		}
		c.Set("custom_claims", customClaims)

		c.Next()
	}
}

// makeRequest is a helper to make HTTP requests
func (suite *MenuAcceptanceTestSuite) makeRequest(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyJSON, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyJSON)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req, err := http.NewRequest(method, suite.server.URL+path, bodyReader)
	suite.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)

	var responseData map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&responseData)
	suite.NoError(err)
	resp.Body.Close()

	return resp, responseData
}

// uploadImage posts a multipart form with an image file
func (suite *MenuAcceptanceTestSuite) uploadImage(itemID int, filename string, content []byte) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	suite.NoError(err)
	_, err = part.Write(content)
	suite.NoError(err)
	suite.NoError(writer.Close())

	req, err := http.NewRequest("POST", suite.server.URL+fmt.Sprintf("/api/v1/menu-items/%d/image", itemID), &buf)
	suite.NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)

	var responseData map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&responseData)
	suite.NoError(err)
	resp.Body.Close()

	return resp, responseData
}

// TestMenuLaunch_Acceptance builds a small menu with photos and browses it
// the way a diner would
func (suite *MenuAcceptanceTestSuite) TestMenuLaunch_Acceptance() {
	// Step 1: Manager creates the dishes
	dishes := []map[string]interface{}{
		{"restaurant_id": 1, "name": "Margherita", "category": "mains", "price": 11.50},
		{"restaurant_id": 1, "name": "Tiramisu", "category": "desserts", "price": 6.50},
	}

	ids := make([]int, 0, len(dishes))
	for _, dish := range dishes {
		resp, respData := suite.makeRequest("POST", "/api/v1/menu-items", dish)
		assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
		ids = append(ids, int(respData["data"].(map[string]interface{})["id"].(float64)))
	}

	// Step 2: Manager attaches a photo to the pizza
	resp, respData := suite.uploadImage(ids[0], "margherita.png", []byte("png bytes"))
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	uploaded := respData["data"].(map[string]interface{})
	assert.Equal(suite.T(), "uploads/mock_margherita.png", uploaded["image_s3_key"])
	assert.Contains(suite.T(), uploaded["image_url"], "uploads/mock_margherita.png")

	// Step 3: A diner browses the menu and sees the photo URL
	resp, respData = suite.makeRequest("GET", "/api/v1/menu-items?restaurant_id=1", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	items := respData["data"].([]interface{})
	assert.Equal(suite.T(), 2, len(items))

	var pizza map[string]interface{}
	for _, raw := range items {
		item := raw.(map[string]interface{})
		if item["name"] == "Margherita" {
			pizza = item
		}
	}
	suite.NotNil(pizza)
	assert.Contains(suite.T(), pizza["image_url"], "uploads/mock_margherita.png")

	// Step 4: The dessert has no photo and no URL
	resp, respData = suite.makeRequest("GET", fmt.Sprintf("/api/v1/menu-items/%d", ids[1]), nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	dessert := respData["data"].(map[string]interface{})
	assert.Nil(suite.T(), dessert["image_url"])
}

// TestEightySixedDish_Acceptance takes a dish off the menu mid-service
func (suite *MenuAcceptanceTestSuite) TestEightySixedDish_Acceptance() {
	resp, respData := suite.makeRequest("POST", "/api/v1/menu-items", map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Catch of the Day",
		"category":      "mains",
		"price":         21.00,
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	id := int(respData["data"].(map[string]interface{})["id"].(float64))

	// Kitchen runs out
	resp, _ = suite.makeRequest("PUT", fmt.Sprintf("/api/v1/menu-items/%d", id), map[string]interface{}{
		"available": false,
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	// Diners filtering for available dishes no longer see it
	resp, respData = suite.makeRequest("GET", "/api/v1/menu-items?restaurant_id=1&available=true", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	items := respData["data"].([]interface{})
	assert.Equal(suite.T(), 0, len(items))

	// But the dish itself is still on record
	resp, respData = suite.makeRequest("GET", fmt.Sprintf("/api/v1/menu-items/%d", id), nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), false, respData["data"].(map[string]interface{})["available"])
}

// TestPhotoReplacement_Acceptance swaps a dish photo and checks the old
// object is cleaned out of storage
func (suite *MenuAcceptanceTestSuite) TestPhotoReplacement_Acceptance() {
	resp, respData := suite.makeRequest("POST", "/api/v1/menu-items", map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Tiramisu",
		"category":      "desserts",
		"price":         6.50,
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	id := int(respData["data"].(map[string]interface{})["id"].(float64))

	resp, _ = suite.uploadImage(id, "draft.png", []byte("v1"))
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	resp, _ = suite.uploadImage(id, "final.png", []byte("v2"))
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	assert.False(suite.T(), suite.mockS3.FileExists("uploads/mock_draft.png"))
	assert.True(suite.T(), suite.mockS3.FileExists("uploads/mock_final.png"))

	// A rejected format leaves the current photo in place
	resp, respData = suite.uploadImage(id, "final.jpeg", []byte("v3"))
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
	errorObj := respData["error"].(map[string]interface{})
	assert.Equal(suite.T(), "UPLOAD_FAILED", errorObj["code"])

	var item models.MenuItem
	suite.NoError(suite.db.First(&item, id).Error)
	suite.NotNil(item.ImageS3Key)
	assert.Equal(suite.T(), "uploads/mock_final.png", *item.ImageS3Key)
}

// TestRunSuite runs the test suite
func TestMenuAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(MenuAcceptanceTestSuite))
}
