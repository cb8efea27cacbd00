package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Food is a static nutrition-per-100g record. Seeded foods have a nil UserID
// and are visible to everyone; user-created foods are private.
type Food struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name      string          `gorm:"size:255;not null;index" json:"name"`
	Category  string          `gorm:"size:50;index" json:"category"`
	Calories  float64         `gorm:"type:float;not null" json:"calories"`
	Protein   float64         `gorm:"type:float" json:"protein"`
	Carbs     float64         `gorm:"type:float" json:"carbs"`
	Fat       float64         `gorm:"type:float" json:"fat"`
	Fiber     float64         `gorm:"type:float" json:"fiber"`
	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Meal is a named list of (food, quantity-in-grams) pairs.
type Meal struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Entries   []FoodEntry    `gorm:"constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type FoodEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MealID        uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	FoodID        uuid.UUID `gorm:"type:uuid;not null" json:"food_id"`
	QuantityGrams float64   `gorm:"type:float;not null" json:"quantity_grams"`
	Food          *Food     `json:"food,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// DietPlan groups meals into seven fixed weekday slots. TotalCalories is a
// cached figure recomputed on every mutation of the plan or its meals.
type DietPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	TotalCalories float64        `gorm:"type:float" json:"total_calories"`
	Meals         []PlanMeal     `gorm:"constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PlanMeal struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DietPlanID uuid.UUID `gorm:"type:uuid;not null;index" json:"diet_plan_id"`
	MealID     uuid.UUID `gorm:"type:uuid;not null" json:"meal_id"`
	Weekday    int       `gorm:"not null;check:weekday >= 0 AND weekday <= 6" json:"weekday"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Meal       *Meal     `json:"meal,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *PlanMeal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
