package api

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

type ReminderHandler struct {
	db *gorm.DB
}

func NewReminderHandler(db *gorm.DB) *ReminderHandler {
	return &ReminderHandler{db: db}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	{
		reminders.GET("", h.ListReminders)
		reminders.GET("/:id", h.GetReminder)
		reminders.POST("", h.CreateReminder)
		reminders.PUT("/:id", h.UpdateReminder)
		reminders.POST("/:id/toggle", h.ToggleReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
	}
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type ReminderRequest struct {
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message"`
	TimeOfDay string `json:"time_of_day" binding:"required"`
	Weekdays  []int  `json:"weekdays" binding:"required"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

func (r *ReminderRequest) validate(c *gin.Context) bool {
	if !timeOfDayRe.MatchString(r.TimeOfDay) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_of_day must be in HH:MM format"})
		return false
	}
	if len(r.Weekdays) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one weekday is required"})
		return false
	}
	seen := map[int]bool{}
	for _, d := range r.Weekdays {
		if d < 0 || d > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekdays must be between 0 and 6"})
			return false
		}
		if seen[d] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekdays must be unique"})
			return false
		}
		seen[d] = true
	}
	return true
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var reminders []models.Reminder
	if err := h.db.Where("user_id = ?", userID).
		Order("time_of_day ASC").
		Find(&reminders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var reminder models.Reminder
	if err := h.db.First(&reminder, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	reminder := models.Reminder{
		UserID:    userID,
		Title:     req.Title,
		Message:   req.Message,
		TimeOfDay: req.TimeOfDay,
		Weekdays:  models.JSONBIntArray(req.Weekdays),
		Enabled:   enabled,
	}
	if err := h.db.Create(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var reminder models.Reminder
	if err := h.db.First(&reminder, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}

	reminder.Title = req.Title
	reminder.Message = req.Message
	reminder.TimeOfDay = req.TimeOfDay
	reminder.Weekdays = models.JSONBIntArray(req.Weekdays)
	if req.Enabled != nil {
		reminder.Enabled = *req.Enabled
	}

	if err := h.db.Save(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

// ToggleReminder flips the enabled flag without touching the schedule.
func (h *ReminderHandler) ToggleReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var reminder models.Reminder
	if err := h.db.First(&reminder, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	reminder.Enabled = !reminder.Enabled
	if err := h.db.Model(&reminder).Update("enabled", reminder.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Reminder{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reminder"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully", "id": c.Param("id")})
}
