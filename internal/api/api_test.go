package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-go/backend/internal/database"
	"github.com/foodgram-go/backend/internal/models"
	"github.com/foodgram-go/backend/internal/service"
)

// setupTestRouter builds a router backed by a fresh in-memory database.
// Redis is absent, so token revocation and rate limiting are off.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router := gin.New()
	images := service.NewImageService(service.NewLocalStore(t.TempDir()))
	SetupAPI(router, db, nil, "test-secret", images)
	return router, db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user through the API and returns its id and token
func registerAndLogin(t *testing.T, router *gin.Engine, email, username string) (string, string) {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/users", "", gin.H{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	userID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, "POST", "/api/auth/token/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	token := decodeBody(t, w)["auth_token"].(string)

	return userID, token
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) uuid.UUID {
	t.Helper()
	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return ing.ID
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) uuid.UUID {
	t.Helper()
	tag := models.Tag{Name: name, Color: "#49B64E", Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return tag.ID
}

// createRecipe publishes a recipe through the API and returns its id
func createRecipe(t *testing.T, router *gin.Engine, token, name string, ingredients []gin.H, tags []uuid.UUID) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/recipes", token, gin.H{
		"name":         name,
		"text":         "Stir and serve.",
		"cooking_time": 15,
		"image":        "https://example.com/image.jpg",
		"ingredients":  ingredients,
		"tags":         tags,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	return decodeBody(t, w)["id"].(string)
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/health", "", nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}
