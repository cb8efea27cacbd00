package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/backend/internal/models"
)

func setupReminderRouter(t *testing.T) (*gin.Engine, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "reminded@example.com")
	handler := NewReminderHandler(db)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, token
}

func TestCreateReminder(t *testing.T) {
	router, token := setupReminderRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/reminders", token, gin.H{
		"title":       "Leg day",
		"message":     "No skipping",
		"time_of_day": "07:30",
		"weekdays":    []int{1, 3, 5},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Reminder models.Reminder `json:"reminder"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "07:30", resp.Reminder.TimeOfDay)
	assert.Equal(t, models.JSONBIntArray{1, 3, 5}, resp.Reminder.Weekdays)
	assert.True(t, resp.Reminder.Enabled)
}

func TestReminderValidation(t *testing.T) {
	router, token := setupReminderRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad time", gin.H{"title": "T", "time_of_day": "25:00", "weekdays": []int{1}}},
		{"bad time format", gin.H{"title": "T", "time_of_day": "7:30", "weekdays": []int{1}}},
		{"weekday out of range", gin.H{"title": "T", "time_of_day": "07:30", "weekdays": []int{7}}},
		{"duplicate weekday", gin.H{"title": "T", "time_of_day": "07:30", "weekdays": []int{1, 1}}},
		{"no weekdays", gin.H{"title": "T", "time_of_day": "07:30", "weekdays": []int{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/reminders", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestToggleReminder(t *testing.T) {
	router, token := setupReminderRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/reminders", token, gin.H{
		"title":       "Stretch",
		"time_of_day": "21:00",
		"weekdays":    []int{0, 6},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Reminder models.Reminder `json:"reminder"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Reminder.Enabled)

	w = doJSON(t, router, http.MethodPost, "/api/v1/reminders/"+created.Reminder.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Reminder models.Reminder `json:"reminder"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Reminder.Enabled)

	w = doJSON(t, router, http.MethodPost, "/api/v1/reminders/"+created.Reminder.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Reminder.Enabled)
}

func TestReminderListOrderedByTime(t *testing.T) {
	router, token := setupReminderRouter(t)

	for _, tod := range []string{"21:00", "07:30", "12:15"} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/reminders", token, gin.H{
			"title": "R " + tod, "time_of_day": tod, "weekdays": []int{2},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/reminders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reminders []models.Reminder `json:"reminders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reminders, 3)
	assert.Equal(t, "07:30", resp.Reminders[0].TimeOfDay)
	assert.Equal(t, "12:15", resp.Reminders[1].TimeOfDay)
	assert.Equal(t, "21:00", resp.Reminders[2].TimeOfDay)
}
