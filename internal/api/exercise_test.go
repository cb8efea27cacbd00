package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

func setupExerciseRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "lifter@example.com")
	handler := NewExerciseHandler(db)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token
}

func createExercise(t *testing.T, router *gin.Engine, token, name, group string) models.Exercise {
	w := doJSON(t, router, http.MethodPost, "/api/v1/exercises", token, gin.H{
		"name":         name,
		"muscle_group": group,
		"target_sets":  3,
		"target_reps":  8,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var exercise models.Exercise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exercise))
	return exercise
}

func TestExerciseCRUD(t *testing.T) {
	router, _, token := setupExerciseRouter(t)

	exercise := createExercise(t, router, token, "Bench Press", "chest")
	require.NotEmpty(t, exercise.ID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises/"+exercise.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/exercises/"+exercise.ID.String(), token, gin.H{
		"name":         "Incline Bench Press",
		"muscle_group": "chest",
		"target_sets":  4,
		"target_reps":  10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Exercise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Incline Bench Press", updated.Name)
	assert.Equal(t, 4, updated.TargetSets)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+exercise.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/exercises/"+exercise.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExerciseListFilterAndDisplay(t *testing.T) {
	router, _, token := setupExerciseRouter(t)

	createExercise(t, router, token, "Squat", "legs")
	createExercise(t, router, token, "Pull Up", "upper_back")

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises?muscle_group=upper_back", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Exercises []struct {
			Exercise           models.Exercise `json:"exercise"`
			MuscleGroupDisplay string          `json:"muscle_group_display"`
		} `json:"exercises"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Exercises, 1)
	assert.Equal(t, "Pull Up", resp.Exercises[0].Exercise.Name)
	assert.Equal(t, "Upper Back", resp.Exercises[0].MuscleGroupDisplay)
}

func TestExerciseOwnershipScoping(t *testing.T) {
	router, db, token := setupExerciseRouter(t)
	exercise := createExercise(t, router, token, "Deadlift", "back")

	otherToken, _ := newTestUser(t, db, "other@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises/"+exercise.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+exercise.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Still present for the owner.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/exercises/%s", exercise.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
