package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// fakeDraftService keeps drafts in a map, mirroring the Redis-backed
// service's ownership and not-found semantics.
type fakeDraftService struct {
	drafts map[string]*service.SessionDraft
}

var _ service.ISessionDraftService = (*fakeDraftService)(nil)

func newFakeDraftService() *fakeDraftService {
	return &fakeDraftService{drafts: map[string]*service.SessionDraft{}}
}

func (f *fakeDraftService) StartDraft(ctx context.Context, userID uuid.UUID, workoutPlanID, notes string) (*service.SessionDraft, error) {
	draft := &service.SessionDraft{
		ID:            uuid.New().String(),
		UserID:        userID.String(),
		WorkoutPlanID: workoutPlanID,
		StartedAt:     time.Now(),
		Notes:         notes,
		Exercises:     []service.DraftExercise{},
	}
	f.drafts[draft.ID] = draft
	return draft, nil
}

func (f *fakeDraftService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*service.SessionDraft, error) {
	draft, ok := f.drafts[id]
	if !ok || draft.UserID != userID.String() {
		return nil, service.ErrDraftNotFound
	}
	return draft, nil
}

func (f *fakeDraftService) AddExercise(ctx context.Context, userID uuid.UUID, draftID, exerciseName, muscleGroup string) (*service.SessionDraft, error) {
	draft, err := f.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	draft.Exercises = append(draft.Exercises, service.DraftExercise{
		ExerciseName: exerciseName,
		MuscleGroup:  muscleGroup,
		Sets:         []service.DraftSet{},
	})
	return draft, nil
}

func (f *fakeDraftService) AddSet(ctx context.Context, userID uuid.UUID, draftID, exerciseName string, set service.DraftSet) (*service.SessionDraft, error) {
	draft, err := f.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	for i := len(draft.Exercises) - 1; i >= 0; i-- {
		if draft.Exercises[i].ExerciseName == exerciseName {
			draft.Exercises[i].Sets = append(draft.Exercises[i].Sets, set)
			return draft, nil
		}
	}
	return nil, fmt.Errorf("exercise %q not in draft", exerciseName)
}

func (f *fakeDraftService) DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error {
	if _, err := f.GetDraft(ctx, userID, id); err != nil {
		return err
	}
	delete(f.drafts, id)
	return nil
}

// stuckDraftService fails every delete, as when Redis drops mid-request.
type stuckDraftService struct {
	*fakeDraftService
}

func (f *stuckDraftService) DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error {
	return errors.New("redis unavailable")
}

func setupDraftRouter(t *testing.T, drafts service.ISessionDraftService) (*gin.Engine, *gorm.DB, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "athlete@example.com")
	handler := NewSessionHandler(db, drafts, nil, nil)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token
}

func startDraft(t *testing.T, router *gin.Engine, token, notes string) service.SessionDraft {
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/drafts", token, gin.H{"notes": notes})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Draft service.SessionDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Draft.ID)
	return resp.Draft
}

func TestDraftFlowPersistsSession(t *testing.T) {
	fake := newFakeDraftService()
	router, db, token := setupDraftRouter(t, fake)

	draft := startDraft(t, router, token, "leg day")
	base := "/api/v1/sessions/drafts/" + draft.ID

	w := doJSON(t, router, http.MethodPost, base+"/exercises", token,
		gin.H{"exercise_name": "Squat", "muscle_group": "legs"})
	require.Equal(t, http.StatusOK, w.Code)

	for _, weight := range []float64{100, 102.5} {
		w = doJSON(t, router, http.MethodPost, base+"/sets", token,
			gin.H{"exercise_name": "Squat", "reps": 5, "weight_kg": weight})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodPost, base+"/finish", token, gin.H{"duration_minutes": 50})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Session models.WorkoutSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Session.DurationMinutes)
	assert.Equal(t, "leg day", resp.Session.Notes)

	var stored models.WorkoutSession
	require.NoError(t, db.Preload("Exercises.Sets").First(&stored, "id = ?", resp.Session.ID).Error)
	require.Len(t, stored.Exercises, 1)
	assert.Equal(t, "Squat", stored.Exercises[0].ExerciseName)
	require.Len(t, stored.Exercises[0].Sets, 2)
	assert.Equal(t, 5, stored.Exercises[0].Sets[0].Reps)

	// Finishing consumed the draft.
	assert.Empty(t, fake.drafts)
	w = doJSON(t, router, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftScopedToOwner(t *testing.T) {
	fake := newFakeDraftService()
	router, db, token := setupDraftRouter(t, fake)

	draft := startDraft(t, router, token, "")
	base := "/api/v1/sessions/drafts/" + draft.ID

	rivalToken, _ := newTestUser(t, db, "rival@example.com")
	w := doJSON(t, router, http.MethodGet, base, rivalToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/finish", rivalToken, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No session was persisted for the rival.
	var count int64
	require.NoError(t, db.Model(&models.WorkoutSession{}).Count(&count).Error)
	assert.Zero(t, count)

	w = doJSON(t, router, http.MethodPost,
		"/api/v1/sessions/drafts/"+uuid.New().String()+"/finish", token, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddDraftSetUnknownExercise(t *testing.T) {
	router, _, token := setupDraftRouter(t, newFakeDraftService())

	draft := startDraft(t, router, token, "")
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/drafts/"+draft.ID+"/sets", token,
		gin.H{"exercise_name": "Deadlift", "reps": 5, "weight_kg": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAbandonDraft(t *testing.T) {
	fake := newFakeDraftService()
	router, _, token := setupDraftRouter(t, fake)

	draft := startDraft(t, router, token, "")
	base := "/api/v1/sessions/drafts/" + draft.ID

	w := doJSON(t, router, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, fake.drafts)

	w = doJSON(t, router, http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFinishDraftSurvivesDeleteFailure(t *testing.T) {
	stuck := &stuckDraftService{fakeDraftService: newFakeDraftService()}
	router, db, token := setupDraftRouter(t, stuck)

	draft := startDraft(t, router, token, "")
	base := "/api/v1/sessions/drafts/" + draft.ID

	w := doJSON(t, router, http.MethodPost, base+"/exercises", token,
		gin.H{"exercise_name": "Row", "muscle_group": "upper_back"})
	require.Equal(t, http.StatusOK, w.Code)

	// The session is kept even when the draft cleanup fails.
	w = doJSON(t, router, http.MethodPost, base+"/finish", token, gin.H{"duration_minutes": 30})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.WorkoutSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
