package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrDraftNotFound = errors.New("session draft not found")

// draftTTL is how long an in-progress workout survives without being
// finished or abandoned.
const draftTTL = 24 * time.Hour

// SessionDraft represents an in-progress workout session held in Redis until
// the user finishes or abandons it.
type SessionDraft struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	WorkoutPlanID string         `json:"workout_plan_id,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	Notes         string         `json:"notes"`
	Exercises     []DraftExercise `json:"exercises"`
}

type DraftExercise struct {
	ExerciseName string     `json:"exercise_name"`
	MuscleGroup  string     `json:"muscle_group"`
	Sets         []DraftSet `json:"sets"`
}

type DraftSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// SessionDraftService stores in-progress workout sessions in Redis.
type SessionDraftService struct {
	redis *redis.Client
}

func NewSessionDraftService(redisClient *redis.Client) *SessionDraftService {
	return &SessionDraftService{
		redis: redisClient,
	}
}

func draftKey(id string) string {
	return fmt.Sprintf("session_draft:%s", id)
}

// StartDraft creates a new draft for the user and returns it.
func (s *SessionDraftService) StartDraft(ctx context.Context, userID uuid.UUID, workoutPlanID, notes string) (*SessionDraft, error) {
	draft := &SessionDraft{
		ID:            uuid.New().String(),
		UserID:        userID.String(),
		WorkoutPlanID: workoutPlanID,
		StartedAt:     time.Now(),
		Notes:         notes,
		Exercises:     []DraftExercise{},
	}
	if err := s.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveDraft writes a draft to Redis with the standard TTL.
func (s *SessionDraftService) SaveDraft(ctx context.Context, draft *SessionDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal session draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session draft: %w", err)
	}
	return nil
}

// GetDraft retrieves a draft owned by the given user.
func (s *SessionDraftService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*SessionDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session draft: %w", err)
	}

	var draft SessionDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session draft: %w", err)
	}
	// Drafts are private to their owner
	if draft.UserID != userID.String() {
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

// AddExercise appends an exercise to a draft.
func (s *SessionDraftService) AddExercise(ctx context.Context, userID uuid.UUID, draftID, exerciseName, muscleGroup string) (*SessionDraft, error) {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	draft.Exercises = append(draft.Exercises, DraftExercise{
		ExerciseName: exerciseName,
		MuscleGroup:  muscleGroup,
		Sets:         []DraftSet{},
	})
	if err := s.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AddSet appends a completed set to the draft's most recently added exercise
// matching the given name.
func (s *SessionDraftService) AddSet(ctx context.Context, userID uuid.UUID, draftID, exerciseName string, set DraftSet) (*SessionDraft, error) {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	for i := len(draft.Exercises) - 1; i >= 0; i-- {
		if draft.Exercises[i].ExerciseName == exerciseName {
			draft.Exercises[i].Sets = append(draft.Exercises[i].Sets, set)
			if err := s.SaveDraft(ctx, draft); err != nil {
				return nil, err
			}
			return draft, nil
		}
	}
	return nil, fmt.Errorf("exercise %q not in draft", exerciseName)
}

// DeleteDraft removes a draft.
func (s *SessionDraftService) DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error {
	// Ownership check before deleting
	if _, err := s.GetDraft(ctx, userID, id); err != nil {
		return err
	}
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session draft: %w", err)
	}
	return nil
}
