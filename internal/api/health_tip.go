package api

import (
	"hash/fnv"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
)

type HealthTipHandler struct {
	db *gorm.DB
}

func NewHealthTipHandler(db *gorm.DB) *HealthTipHandler {
	return &HealthTipHandler{db: db}
}

func (h *HealthTipHandler) RegisterRoutes(router *gin.RouterGroup) {
	tips := router.Group("/tips")
	{
		tips.GET("", h.ListTips)
		tips.GET("/random", h.RandomTip)
		tips.GET("/today", h.TipOfTheDay)
	}
}

func (h *HealthTipHandler) ListTips(c *gin.Context) {
	query := h.db.Model(&models.HealthTip{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var tips []models.HealthTip
	if err := query.Order("category ASC, created_at ASC").Find(&tips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

func (h *HealthTipHandler) RandomTip(c *gin.Context) {
	var tips []models.HealthTip
	if err := h.db.Find(&tips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tips"})
		return
	}
	if len(tips) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tips available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tip": tips[rand.Intn(len(tips))]})
}

// TipOfTheDay returns the same tip for everyone on a given calendar day by
// hashing the date into the tip list.
func (h *HealthTipHandler) TipOfTheDay(c *gin.Context) {
	var tips []models.HealthTip
	if err := h.db.Order("created_at ASC").Find(&tips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tips"})
		return
	}
	if len(tips) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tips available"})
		return
	}

	hash := fnv.New32a()
	hash.Write([]byte(time.Now().UTC().Format("2006-01-02")))
	tip := tips[int(hash.Sum32())%len(tips)]

	c.JSON(http.StatusOK, gin.H{"tip": tip})
}
