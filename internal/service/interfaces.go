package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(name, email, password string, seed *types.ProfileSeed) (string, error)
	Login(email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile and weight-log operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	Metrics(profile *models.UserProfile, now time.Time) BodyMetrics
	LogWeight(ctx context.Context, userID uuid.UUID, weightKg float64, loggedAt time.Time, note string) (*models.WeightEntry, error)
	ListWeights(ctx context.Context, userID uuid.UUID) ([]models.WeightEntry, error)
	DeleteWeight(ctx context.Context, userID, entryID uuid.UUID) error
}

// ISessionDraftService defines the interface for in-progress workout drafts
type ISessionDraftService interface {
	StartDraft(ctx context.Context, userID uuid.UUID, workoutPlanID, notes string) (*SessionDraft, error)
	GetDraft(ctx context.Context, userID uuid.UUID, id string) (*SessionDraft, error)
	AddExercise(ctx context.Context, userID uuid.UUID, draftID, exerciseName, muscleGroup string) (*SessionDraft, error)
	AddSet(ctx context.Context, userID uuid.UUID, draftID, exerciseName string, set DraftSet) (*SessionDraft, error)
	DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error
}

var (
	_ IAuthService         = (*AuthService)(nil)
	_ IProfileService      = (*ProfileService)(nil)
	_ ISessionDraftService = (*SessionDraftService)(nil)
)
