package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

type ExerciseHandler struct {
	db *gorm.DB
}

func NewExerciseHandler(db *gorm.DB) *ExerciseHandler {
	return &ExerciseHandler{db: db}
}

func (h *ExerciseHandler) RegisterRoutes(router *gin.RouterGroup) {
	exercises := router.Group("/exercises")
	{
		exercises.GET("", h.ListExercises)
		exercises.GET("/:id", h.GetExercise)
		exercises.POST("", h.CreateExercise)
		exercises.PUT("/:id", h.UpdateExercise)
		exercises.DELETE("/:id", h.DeleteExercise)
	}
}

type ExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	MuscleGroup  string   `json:"muscle_group"`
	TargetSets   int      `json:"target_sets" binding:"gte=0"`
	TargetReps   int      `json:"target_reps" binding:"gte=0"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	RestSeconds  *int     `json:"rest_seconds,omitempty"`
	Instructions string   `json:"instructions"`
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := h.db.Where("user_id = ?", userID)
	if group := c.Query("muscle_group"); group != "" {
		query = query.Where("muscle_group = ?", group)
	}

	var exercises []models.Exercise
	if err := query.Order("name ASC").Find(&exercises).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercises"})
		return
	}

	out := make([]gin.H, len(exercises))
	for i, ex := range exercises {
		out[i] = gin.H{
			"exercise":             ex,
			"muscle_group_display": displayName(ex.MuscleGroup),
		}
	}
	c.JSON(http.StatusOK, gin.H{"exercises": out})
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var exercise models.Exercise
	if err := h.db.First(&exercise, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise := models.Exercise{
		UserID:       userID,
		Name:         req.Name,
		MuscleGroup:  req.MuscleGroup,
		TargetSets:   req.TargetSets,
		TargetReps:   req.TargetReps,
		WeightKg:     req.WeightKg,
		RestSeconds:  req.RestSeconds,
		Instructions: req.Instructions,
	}
	if err := h.db.Create(&exercise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var exercise models.Exercise
	if err := h.db.First(&exercise, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise.Name = req.Name
	exercise.MuscleGroup = req.MuscleGroup
	exercise.TargetSets = req.TargetSets
	exercise.TargetReps = req.TargetReps
	exercise.WeightKg = req.WeightKg
	exercise.RestSeconds = req.RestSeconds
	exercise.Instructions = req.Instructions

	if err := h.db.Save(&exercise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exercise"})
		return
	}

	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise id"})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Exercise{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted successfully", "id": id})
}
