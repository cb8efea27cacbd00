package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

type WorkoutPlanHandler struct {
	db *gorm.DB
}

func NewWorkoutPlanHandler(db *gorm.DB) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{db: db}
}

func (h *WorkoutPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/workout-plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
		plans.POST("", h.CreatePlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.PUT("/:id/days/:weekday", h.SetDayExercises)
	}
}

type PlanExerciseRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id" binding:"required"`
}

type WorkoutPlanRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *WorkoutPlanHandler) ListPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plans []models.WorkoutPlan
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workout plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlan returns one plan with its exercises grouped into the seven weekday
// slots.
func (h *WorkoutPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plan models.WorkoutPlan
	if err := h.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("plan_exercises.weekday ASC, plan_exercises.position ASC")
		}).
		Preload("Exercises.Exercise").
		First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workout plan not found"})
		return
	}

	days := make([][]models.PlanExercise, 7)
	for i := range days {
		days[i] = []models.PlanExercise{}
	}
	for _, pe := range plan.Exercises {
		if pe.Weekday >= 0 && pe.Weekday <= 6 {
			days[pe.Weekday] = append(days[pe.Weekday], pe)
		}
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan, "days": days})
}

func (h *WorkoutPlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.WorkoutPlan{
		UserID: userID,
		Name:   req.Name,
	}
	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workout plan"})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *WorkoutPlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plan models.WorkoutPlan
	if err := h.db.First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workout plan not found"})
		return
	}

	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan.Name = req.Name
	if err := h.db.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workout plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan and its weekday slot rows; the exercises
// themselves are untouched.
func (h *WorkoutPlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WorkoutPlan{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("workout_plan_id = ?", id).Delete(&models.PlanExercise{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workout plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout plan deleted successfully", "id": id})
}

// SetDayExercises replaces the ordered exercise list of one weekday slot.
func (h *WorkoutPlanHandler) SetDayExercises(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	weekday, ok := parseWeekday(c)
	if !ok {
		return
	}

	var plan models.WorkoutPlan
	if err := h.db.First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workout plan not found"})
		return
	}

	var req []PlanExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Exercises must exist and belong to the user
	for _, item := range req {
		var exercise models.Exercise
		if err := h.db.First(&exercise, "id = ? AND user_id = ?", item.ExerciseID, userID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exercise not found: " + item.ExerciseID.String()})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_plan_id = ? AND weekday = ?", plan.ID, weekday).
			Delete(&models.PlanExercise{}).Error; err != nil {
			return err
		}
		for i, item := range req {
			pe := models.PlanExercise{
				WorkoutPlanID: plan.ID,
				ExerciseID:    item.ExerciseID,
				Weekday:       weekday,
				Position:      i,
			}
			if err := tx.Create(&pe).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan day updated successfully", "weekday": weekday})
}
