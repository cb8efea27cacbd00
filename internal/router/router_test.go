package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fittrack/backend/internal/api"
	"github.com/fittrack/backend/internal/service"
	"github.com/fittrack/backend/internal/testhelpers"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDatabase(t)

	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db)
	statsService := service.NewStatsService(db, nil, profileService)

	h := Handlers{
		Auth:        api.NewAuthHandler(authService),
		Profile:     api.NewProfileHandler(profileService, nil, statsService, nil),
		Exercise:    api.NewExerciseHandler(db),
		WorkoutPlan: api.NewWorkoutPlanHandler(db),
		Session:     api.NewSessionHandler(db, nil, statsService, nil),
		Food:        api.NewFoodHandler(db),
		Meal:        api.NewMealHandler(db),
		DietPlan:    api.NewDietPlanHandler(db),
		Goal:        api.NewGoalHandler(db),
		Reminder:    api.NewReminderHandler(db),
		HealthTip:   api.NewHealthTipHandler(db),
		Dashboard:   api.NewDashboardHandler(db, statsService),
	}

	engine := SetupRouter(h, authService, db, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	// Protected routes reject anonymous requests.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
