package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/nutrition"
)

type MealHandler struct {
	db *gorm.DB
}

func NewMealHandler(db *gorm.DB) *MealHandler {
	return &MealHandler{db: db}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.GET("/:id", h.GetMeal)
		meals.POST("", h.CreateMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.DeleteMeal)
	}
}

type FoodEntryRequest struct {
	FoodID        uuid.UUID `json:"food_id" binding:"required"`
	QuantityGrams float64   `json:"quantity_grams" binding:"required,gt=0"`
}

type MealRequest struct {
	Name    string             `json:"name" binding:"required"`
	Entries []FoodEntryRequest `json:"entries"`
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var meals []models.Meal
	if err := h.db.Preload("Entries.Food").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&meals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}

	out := make([]gin.H, 0, len(meals))
	for i := range meals {
		out = append(out, gin.H{
			"meal":   meals[i],
			"totals": nutrition.MealTotals(meals[i].Entries),
		})
	}
	c.JSON(http.StatusOK, gin.H{"meals": out})
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var meal models.Meal
	if err := h.db.Preload("Entries.Food").
		First(&meal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal":   meal,
		"totals": nutrition.MealTotals(meal.Entries),
	})
}

// checkFoods verifies every referenced food exists and is visible to the
// user. Returns false after writing the error response.
func (h *MealHandler) checkFoods(c *gin.Context, userID uuid.UUID, entries []FoodEntryRequest) bool {
	if len(entries) == 0 {
		return true
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FoodID)
	}
	var count int64
	if err := h.db.Model(&models.Food{}).
		Where("id IN ? AND (user_id IS NULL OR user_id = ?)", ids, userID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify foods"})
		return false
	}
	if count != int64(len(ids)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more foods do not exist"})
		return false
	}
	return true
}

func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkFoods(c, userID, req.Entries) {
		return
	}

	meal := models.Meal{UserID: userID, Name: req.Name}
	for _, e := range req.Entries {
		meal.Entries = append(meal.Entries, models.FoodEntry{
			FoodID:        e.FoodID,
			QuantityGrams: e.QuantityGrams,
		})
	}
	if err := h.db.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal"})
		return
	}
	h.db.Preload("Entries.Food").First(&meal, "id = ?", meal.ID)

	c.JSON(http.StatusCreated, gin.H{
		"meal":   meal,
		"totals": nutrition.MealTotals(meal.Entries),
	})
}

// UpdateMeal replaces the meal's name and entry list in one transaction.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var meal models.Meal
	if err := h.db.First(&meal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkFoods(c, userID, req.Entries) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&meal).Update("name", req.Name).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.FoodEntry{}).Error; err != nil {
			return err
		}
		for _, e := range req.Entries {
			entry := models.FoodEntry{
				MealID:        meal.ID,
				FoodID:        e.FoodID,
				QuantityGrams: e.QuantityGrams,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}

	RecomputeUserPlans(h.db, userID)

	h.db.Preload("Entries.Food").First(&meal, "id = ?", meal.ID)
	c.JSON(http.StatusOK, gin.H{
		"meal":   meal,
		"totals": nutrition.MealTotals(meal.Entries),
	})
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var meal models.Meal
	if err := h.db.First(&meal, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.FoodEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.PlanMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}

	RecomputeUserPlans(h.db, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully", "id": meal.ID})
}
