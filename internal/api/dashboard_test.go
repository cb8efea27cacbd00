package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
)

func setupDashboardRouter(t *testing.T) (*gin.Engine, *gorm.DB, string, uuid.UUID) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "dash@example.com")

	var user models.User
	require.NoError(t, db.Where("email = ?", "dash@example.com").First(&user).Error)

	statsService := service.NewStatsService(db, nil, service.NewProfileService(db))
	handler := NewDashboardHandler(db, statsService)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token, user.ID
}

func seedSession(t *testing.T, db *gorm.DB, userID uuid.UUID, performedAt time.Time) {
	session := models.WorkoutSession{
		UserID:      userID,
		PerformedAt: performedAt,
		Exercises: []models.CompletedExercise{
			{
				ExerciseName: "Squat",
				Position:     0,
				Sets: []models.CompletedSet{
					{Position: 0, Reps: 5, WeightKg: 100},
					{Position: 1, Reps: 5, WeightKg: 100},
				},
			},
		},
	}
	require.NoError(t, db.Create(&session).Error)
}

func TestDashboardStats(t *testing.T) {
	router, db, token, userID := setupDashboardRouter(t)

	now := time.Now()
	seedSession(t, db, userID, now)
	seedSession(t, db, userID, now.AddDate(0, 0, -1))
	require.NoError(t, db.Create(&models.WeightEntry{
		UserID: userID, WeightKg: 82.5, LoggedAt: now,
	}).Error)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats service.DashboardStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stats.TotalSessions)
	assert.Equal(t, 2, resp.Stats.CurrentStreak)
	assert.InDelta(t, 82.5, resp.Stats.LatestWeightKg, 0.001)
	assert.Greater(t, resp.Stats.VolumeThisWeek, 0.0)
}

func TestDashboardRecentActivity(t *testing.T) {
	router, db, token, userID := setupDashboardRouter(t)

	now := time.Now()
	for i := 0; i < 7; i++ {
		seedSession(t, db, userID, now.AddDate(0, 0, -i))
	}
	require.NoError(t, db.Create(&models.WeightEntry{
		UserID: userID, WeightKg: 81, LoggedAt: now,
	}).Error)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/recent", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sessions []models.WorkoutSession `json:"sessions"`
		Weights  []models.WeightEntry    `json:"weights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 5)
	require.Len(t, resp.Weights, 1)
	// Newest first.
	assert.True(t, resp.Sessions[0].PerformedAt.After(resp.Sessions[1].PerformedAt))
}
