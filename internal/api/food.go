package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
)

type FoodHandler struct {
	db *gorm.DB
}

func NewFoodHandler(db *gorm.DB) *FoodHandler {
	return &FoodHandler{db: db}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.GET("/search", h.SearchFoods)
		foods.GET("/:id", h.GetFood)
		foods.POST("", h.CreateFood)
		foods.PUT("/:id", h.UpdateFood)
		foods.DELETE("/:id", h.DeleteFood)
	}
}

type FoodRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Fiber    float64 `json:"fiber" binding:"gte=0"`
}

// visible scopes a query to foods the user may see: the seeded catalog
// (nil user_id) plus their own entries.
func (h *FoodHandler) visible(c *gin.Context) (*gorm.DB, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	return h.db.Where("user_id IS NULL OR user_id = ?", userID), true
}

func (h *FoodHandler) ListFoods(c *gin.Context) {
	query, ok := h.visible(c)
	if !ok {
		return
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var foods []models.Food
	if err := query.Order("name ASC").Find(&foods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// SearchFoods orders matches by embedding distance to the query on Postgres.
// SQLite has no vector type, so tests fall back to a name match.
func (h *FoodHandler) SearchFoods(c *gin.Context) {
	query, ok := h.visible(c)
	if !ok {
		return
	}

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	var foods []models.Food
	like := "%" + strings.ToLower(q) + "%"
	if h.db.Dialector.Name() == "postgres" {
		vec := service.GenerateEmbedding(q)
		query = query.
			Where("LOWER(name) LIKE ?", like).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
	} else {
		query = query.Where("LOWER(name) LIKE ?", like).Order("name ASC")
	}
	if err := query.Limit(25).Find(&foods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods, "query": q})
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	query, ok := h.visible(c)
	if !ok {
		return
	}

	var food models.Food
	if err := query.First(&food, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food": food})
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.Food{
		UserID:    &userID,
		Name:      req.Name,
		Category:  req.Category,
		Calories:  req.Calories,
		Protein:   req.Protein,
		Carbs:     req.Carbs,
		Fat:       req.Fat,
		Fiber:     req.Fiber,
		Embedding: service.GenerateEmbedding(req.Name),
	}
	if err := h.db.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"food": food})
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var food models.Food
	if err := h.db.First(&food, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food.Name = req.Name
	food.Category = req.Category
	food.Calories = req.Calories
	food.Protein = req.Protein
	food.Carbs = req.Carbs
	food.Fat = req.Fat
	food.Fiber = req.Fiber
	food.Embedding = service.GenerateEmbedding(req.Name)

	if err := h.db.Save(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food": food})
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Food{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully", "id": c.Param("id")})
}
