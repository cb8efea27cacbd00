package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Activity levels accepted on a profile, ordered by TDEE multiplier.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

type UserProfile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Sex           string         `gorm:"size:10" json:"sex"`
	BirthDate     *time.Time     `json:"birth_date"`
	HeightCm      float64        `gorm:"type:float" json:"height_cm"`
	WeightKg      float64        `gorm:"type:float" json:"weight_kg"`
	GoalWeightKg  float64        `gorm:"type:float" json:"goal_weight_kg"`
	ActivityLevel string         `gorm:"size:20;default:'sedentary'" json:"activity_level"`
	AvatarURL     string         `gorm:"size:255" json:"avatar_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Age returns the user's age in full years at the given time, or 0 when the
// birth date is unknown.
func (p *UserProfile) Age(at time.Time) int {
	if p.BirthDate == nil {
		return 0
	}
	years := at.Year() - p.BirthDate.Year()
	if p.BirthDate.AddDate(years, 0, 0).After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

type WeightEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	WeightKg  float64        `gorm:"type:float;not null" json:"weight_kg"`
	LoggedAt  time.Time      `gorm:"not null;index" json:"logged_at"`
	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *WeightEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
