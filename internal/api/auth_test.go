package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *service.AuthService, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	handler := NewAuthHandler(authService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)
	return router, authService, v1
}

func TestRegisterAndLogin(t *testing.T) {
	router, authService, _ := setupAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := authService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	body := gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"}
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"name": "A", "password": "password123"}},
		{"bad email", gin.H{"name": "A", "email": "not-an-email", "password": "password123"}},
		{"short password", gin.H{"name": "A", "email": "a@example.com", "password": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterSeedsProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	handler := NewAuthHandler(authService)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "password123",
		"profile": gin.H{
			"sex":            "male",
			"height_cm":      180,
			"weight_kg":      82.5,
			"activity_level": "moderate",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "bob@example.com").Error)

	var profile models.UserProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "male", profile.Sex)
	assert.Equal(t, 180.0, profile.HeightCm)
	assert.Equal(t, 82.5, profile.WeightKg)
	assert.Equal(t, "moderate", profile.ActivityLevel)
}
