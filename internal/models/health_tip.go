package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthTip struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Category  string    `gorm:"size:50;index" json:"category"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *HealthTip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
