package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
)

type DashboardHandler struct {
	db           *gorm.DB
	statsService *service.StatsService
}

func NewDashboardHandler(db *gorm.DB, statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{db: db, statsService: statsService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/recent", h.RecentActivity)
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RecentActivity returns the user's last few sessions and weight entries for
// the home screen feed.
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var sessions []models.WorkoutSession
	if err := h.db.Preload("Exercises.Sets").
		Where("user_id = ?", userID).
		Order("performed_at DESC").
		Limit(5).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sessions"})
		return
	}

	var weights []models.WeightEntry
	if err := h.db.Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(5).
		Find(&weights).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent weights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"weights":  weights,
	})
}
