package types

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims holds the claims carried by an access token.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// UpdateProfileRequest represents a partial profile update; nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	Sex           *string    `json:"sex,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	HeightCm      *float64   `json:"height_cm,omitempty"`
	WeightKg      *float64   `json:"weight_kg,omitempty"`
	GoalWeightKg  *float64   `json:"goal_weight_kg,omitempty"`
	ActivityLevel *string    `json:"activity_level,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
}

// ProfileSeed carries the optional body-stat fields accepted at registration.
type ProfileSeed struct {
	Sex           string     `json:"sex"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	HeightCm      float64    `json:"height_cm"`
	WeightKg      float64    `json:"weight_kg"`
	GoalWeightKg  float64    `json:"goal_weight_kg"`
	ActivityLevel string     `json:"activity_level"`
}
