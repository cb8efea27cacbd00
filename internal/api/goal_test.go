package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

type goalResponse struct {
	Goal     models.Goal `json:"goal"`
	Progress struct {
		CurrentValue float64 `json:"current_value"`
		Percent      float64 `json:"percent"`
	} `json:"progress"`
}

func setupGoalRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "goalgetter@example.com")
	handler := NewGoalHandler(db)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token
}

func testUserID(t *testing.T, db *gorm.DB, email string) models.User {
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", email).Error)
	return user
}

func TestWeightLossGoalProgress(t *testing.T) {
	router, db, token := setupGoalRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type":         "weight_loss",
		"title":        "Summer cut",
		"start_value":  90,
		"target_value": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	user := testUserID(t, db, "goalgetter@example.com")
	entry := models.WeightEntry{UserID: user.ID, WeightKg: 85, LoggedAt: time.Now()}
	require.NoError(t, db.Create(&entry).Error)

	w = doJSON(t, router, http.MethodGet, "/api/v1/goals/"+created.Goal.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp goalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 85.0, resp.Progress.CurrentValue)
	assert.Equal(t, 50.0, resp.Progress.Percent)
}

func TestSessionsPerWeekGoalProgress(t *testing.T) {
	router, db, token := setupGoalRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type":         "sessions_per_week",
		"title":        "Train four times a week",
		"start_value":  0,
		"target_value": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	user := testUserID(t, db, "goalgetter@example.com")
	for i := 0; i < 2; i++ {
		session := models.WorkoutSession{UserID: user.ID, PerformedAt: time.Now().Add(-time.Duration(i) * time.Hour)}
		require.NoError(t, db.Create(&session).Error)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/goals/"+created.Goal.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp goalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2.0, resp.Progress.CurrentValue)
	assert.Equal(t, 50.0, resp.Progress.Percent)
}

func TestGoalInvalidType(t *testing.T) {
	router, _, token := setupGoalRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type": "world_domination", "title": "Nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoalMarkDone(t *testing.T) {
	router, _, token := setupGoalRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type": "custom", "title": "Touch toes", "start_value": 0, "target_value": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPost, "/api/v1/goals/"+created.Goal.ID.String()+"/done", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/goals/"+created.Goal.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp goalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Goal.Done)
	assert.Equal(t, 100.0, resp.Progress.Percent)
}
