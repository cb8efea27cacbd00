package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBIntArray stores an int slice as JSONB (TEXT on sqlite).
type JSONBIntArray []int

// Value implements the driver.Valuer interface
func (a JSONBIntArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIntArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIntArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Reminder stores a client-side notification schedule. Delivery is the mobile
// client's concern; the backend only persists and serves these records.
type Reminder struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	TimeOfDay string         `gorm:"size:5;not null" json:"time_of_day"`
	Weekdays  JSONBIntArray  `gorm:"type:jsonb;not null;default:'[]'" json:"weekdays"`
	Enabled   bool           `gorm:"not null;default:true" json:"enabled"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
