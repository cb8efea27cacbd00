package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exercise is a user-owned catalog entry describing how an exercise should be
// performed: target sets/reps and optional working weight and rest time.
type Exercise struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	MuscleGroup  string         `gorm:"size:50;index" json:"muscle_group"`
	TargetSets   int            `json:"target_sets"`
	TargetReps   int            `json:"target_reps"`
	WeightKg     *float64       `gorm:"type:float" json:"weight_kg,omitempty"`
	RestSeconds  *int           `json:"rest_seconds,omitempty"`
	Instructions string         `gorm:"type:text" json:"instructions"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// WorkoutPlan groups exercises into seven fixed weekday slots
// (0=Sunday..6=Saturday) via PlanExercise join rows.
type WorkoutPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Exercises []PlanExercise `gorm:"constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

func (p *WorkoutPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PlanExercise struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkoutPlanID uuid.UUID `gorm:"type:uuid;not null;index" json:"workout_plan_id"`
	ExerciseID    uuid.UUID `gorm:"type:uuid;not null" json:"exercise_id"`
	Weekday       int       `gorm:"not null;check:weekday >= 0 AND weekday <= 6" json:"weekday"`
	Position      int       `gorm:"not null;default:0" json:"position"`
	Exercise      *Exercise `json:"exercise,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *PlanExercise) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WorkoutSession is the historical record of one completed workout.
type WorkoutSession struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	WorkoutPlanID   *uuid.UUID          `gorm:"type:uuid" json:"workout_plan_id,omitempty"`
	PerformedAt     time.Time           `gorm:"not null;index" json:"performed_at"`
	DurationMinutes int                 `json:"duration_minutes"`
	Notes           string              `gorm:"type:text" json:"notes"`
	Exercises       []CompletedExercise `gorm:"constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

func (s *WorkoutSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CompletedExercise struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	WorkoutSessionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"workout_session_id"`
	ExerciseName     string         `gorm:"size:255;not null" json:"exercise_name"`
	MuscleGroup      string         `gorm:"size:50" json:"muscle_group"`
	Position         int            `gorm:"not null;default:0" json:"position"`
	Sets             []CompletedSet `gorm:"constraint:OnDelete:CASCADE" json:"sets,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (e *CompletedExercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type CompletedSet struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompletedExerciseID uuid.UUID `gorm:"type:uuid;not null;index" json:"completed_exercise_id"`
	Position            int       `gorm:"not null;default:0" json:"position"`
	Reps                int       `gorm:"not null" json:"reps"`
	WeightKg            float64   `gorm:"type:float" json:"weight_kg"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (s *CompletedSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
