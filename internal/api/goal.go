package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/health"
	"github.com/fittrack/backend/internal/models"
)

type GoalHandler struct {
	db *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{db: db}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.ListGoals)
		goals.GET("/:id", h.GetGoal)
		goals.POST("", h.CreateGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.POST("/:id/done", h.MarkDone)
		goals.DELETE("/:id", h.DeleteGoal)
	}
}

var goalTypes = map[string]bool{
	models.GoalWeightLoss:      true,
	models.GoalWeightGain:      true,
	models.GoalSessionsPerWeek: true,
	models.GoalCustom:          true,
}

type GoalRequest struct {
	Type        string     `json:"type" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	StartValue  float64    `json:"start_value"`
	TargetValue float64    `json:"target_value"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
}

// progress reports how far along a goal is as a 0..100 percentage, together
// with the current value it was measured against.
func (h *GoalHandler) progress(userID uuid.UUID, goal *models.Goal) gin.H {
	current := goal.StartValue

	switch goal.Type {
	case models.GoalWeightLoss, models.GoalWeightGain:
		var entry models.WeightEntry
		if err := h.db.Where("user_id = ?", userID).
			Order("logged_at DESC").
			First(&entry).Error; err == nil {
			current = entry.WeightKg
		}
	case models.GoalSessionsPerWeek:
		year, week := time.Now().ISOWeek()
		var sessions []models.WorkoutSession
		if err := h.db.Where("user_id = ?", userID).Find(&sessions).Error; err == nil {
			var count float64
			for _, s := range sessions {
				y, w := s.PerformedAt.ISOWeek()
				if y == year && w == week {
					count++
				}
			}
			current = count
		}
	}

	percent := 0.0
	span := goal.TargetValue - goal.StartValue
	if span != 0 {
		percent = (current - goal.StartValue) / span * 100
	} else if current == goal.TargetValue {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if goal.Done {
		percent = 100
	}

	return gin.H{
		"current_value": health.Round1(current),
		"percent":       health.Round1(percent),
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var goals []models.Goal
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goals"})
		return
	}

	out := make([]gin.H, 0, len(goals))
	for i := range goals {
		out = append(out, gin.H{
			"goal":     goals[i],
			"progress": h.progress(userID, &goals[i]),
		})
	}
	c.JSON(http.StatusOK, gin.H{"goals": out})
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var goal models.Goal
	if err := h.db.First(&goal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":     goal,
		"progress": h.progress(userID, &goal),
	})
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !goalTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal type"})
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		StartValue:  req.StartValue,
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
	}
	if err := h.db.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var goal models.Goal
	if err := h.db.First(&goal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !goalTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal type"})
		return
	}

	goal.Type = req.Type
	goal.Title = req.Title
	goal.StartValue = req.StartValue
	goal.TargetValue = req.TargetValue
	goal.TargetDate = req.TargetDate

	if err := h.db.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":     goal,
		"progress": h.progress(userID, &goal),
	})
}

func (h *GoalHandler) MarkDone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var goal models.Goal
	if err := h.db.First(&goal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	if err := h.db.Model(&goal).Update("done", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Goal{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully", "id": c.Param("id")})
}
