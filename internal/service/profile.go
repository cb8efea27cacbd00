package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/health"
	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/types"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles user profiles and the weight log.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the non-nil fields of the request to a user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Sex != nil {
		profile.Sex = *req.Sex
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.GoalWeightKg != nil {
		profile.GoalWeightKg = *req.GoalWeightKg
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// LogWeight appends a weight entry and updates the profile's current weight.
func (s *ProfileService) LogWeight(ctx context.Context, userID uuid.UUID, weightKg float64, loggedAt time.Time, note string) (*models.WeightEntry, error) {
	entry := models.WeightEntry{
		UserID:   userID,
		WeightKg: weightKg,
		LoggedAt: loggedAt,
		Note:     note,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).
			Where("user_id = ?", userID).
			Update("weight_kg", weightKg).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListWeights returns a user's weight entries, newest first.
func (s *ProfileService) ListWeights(ctx context.Context, userID uuid.UUID) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteWeight removes one of the user's weight entries.
func (s *ProfileService) DeleteWeight(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.WeightEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BodyMetrics bundles the computed metrics returned alongside a profile.
type BodyMetrics struct {
	BMI           float64 `json:"bmi"`
	BMR           float64 `json:"bmr"`
	TDEE          float64 `json:"tdee"`
	IdealWeightKg float64 `json:"ideal_weight_kg"`
	AgeYears      int     `json:"age_years"`
}

// Metrics computes BMI/BMR/TDEE/ideal weight from a profile at the given time.
func (s *ProfileService) Metrics(profile *models.UserProfile, now time.Time) BodyMetrics {
	age := profile.Age(now)
	bmr := health.BMR(profile.Sex, profile.WeightKg, profile.HeightCm, age)
	return BodyMetrics{
		BMI:           health.Round1(health.BMI(profile.WeightKg, profile.HeightCm)),
		BMR:           health.Round1(bmr),
		TDEE:          health.Round1(health.TDEE(bmr, profile.ActivityLevel)),
		IdealWeightKg: health.Round1(health.IdealWeight(profile.Sex, profile.HeightCm)),
		AgeYears:      age,
	}
}
