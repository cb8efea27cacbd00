package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/middleware"
	"github.com/fittrack/backend/internal/service"
	"github.com/fittrack/backend/internal/testhelpers"
)

// setupTestDB returns an in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	return testhelpers.SetupSQLiteDatabase(t)
}

// newTestUser registers a user and returns a valid bearer token for them.
func newTestUser(t *testing.T, db *gorm.DB, email string) (string, *service.AuthService) {
	authService := service.NewAuthService(db, "test-secret")
	token, err := authService.Register("Test User", email, "password123", nil)
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return token, authService
}

// protectedRouter mounts the given route registration behind auth middleware
// under /api/v1, mirroring the production router.
func protectedRouter(authService *service.AuthService, register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	register(protected)
	return router
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
