package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

func setupTipRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "reader@example.com")
	handler := NewHealthTipHandler(db)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token
}

func seedTips(t *testing.T, db *gorm.DB) {
	tips := []models.HealthTip{
		{Category: "hydration", Text: "Drink water."},
		{Category: "training", Text: "Warm up first."},
		{Category: "training", Text: "Track your sets."},
	}
	for i := range tips {
		require.NoError(t, db.Create(&tips[i]).Error)
	}
}

func TestListTipsByCategory(t *testing.T) {
	router, db, token := setupTipRouter(t)
	seedTips(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/v1/tips?category=training", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tips []models.HealthTip `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tips, 2)
	for _, tip := range resp.Tips {
		assert.Equal(t, "training", tip.Category)
	}
}

func TestRandomTip(t *testing.T) {
	router, db, token := setupTipRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/tips/random", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	seedTips(t, db)
	w = doJSON(t, router, http.MethodGet, "/api/v1/tips/random", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tip models.HealthTip `json:"tip"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Tip.Text)
}

func TestTipOfTheDayIsStable(t *testing.T) {
	router, db, token := setupTipRouter(t)
	seedTips(t, db)

	var first models.HealthTip
	for i := 0; i < 5; i++ {
		w := doJSON(t, router, http.MethodGet, "/api/v1/tips/today", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Tip models.HealthTip `json:"tip"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if i == 0 {
			first = resp.Tip
			continue
		}
		assert.Equal(t, first.ID, resp.Tip.ID)
	}
}
