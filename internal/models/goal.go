package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GoalWeightLoss      = "weight_loss"
	GoalWeightGain      = "weight_gain"
	GoalSessionsPerWeek = "sessions_per_week"
	GoalCustom          = "custom"
)

type Goal struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string         `gorm:"size:30;not null" json:"type"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	StartValue  float64        `gorm:"type:float" json:"start_value"`
	TargetValue float64        `gorm:"type:float" json:"target_value"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Done        bool           `gorm:"not null;default:false" json:"done"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
