package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/nutrition"
)

type DietPlanHandler struct {
	db *gorm.DB
}

func NewDietPlanHandler(db *gorm.DB) *DietPlanHandler {
	return &DietPlanHandler{db: db}
}

func (h *DietPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/diet-plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
		plans.POST("", h.CreatePlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.PUT("/:id/days/:weekday", h.SetDayMeals)
		plans.GET("/:id/days/:weekday", h.GetDayTotals)
	}
}

type DietPlanRequest struct {
	Name string `json:"name" binding:"required"`
}

type DayMealsRequest struct {
	MealIDs []uuid.UUID `json:"meal_ids"`
}

// recomputeTotalCalories reloads the plan's slots and rewrites the cached
// weekly calorie figure.
func recomputeTotalCalories(db *gorm.DB, planID uuid.UUID) error {
	var slots []models.PlanMeal
	if err := db.Preload("Meal.Entries.Food").
		Where("diet_plan_id = ?", planID).
		Find(&slots).Error; err != nil {
		return err
	}
	totals := nutrition.PlanTotals(slots)
	return db.Model(&models.DietPlan{}).
		Where("id = ?", planID).
		Update("total_calories", totals.Calories).Error
}

// RecomputeUserPlans refreshes the cached calories on every plan the user
// owns. Called after meal edits that may affect plans indirectly.
func RecomputeUserPlans(db *gorm.DB, userID uuid.UUID) {
	var planIDs []uuid.UUID
	if err := db.Model(&models.DietPlan{}).
		Where("user_id = ?", userID).
		Pluck("id", &planIDs).Error; err != nil {
		log.Printf("failed to list diet plans for user %s: %v", userID, err)
		return
	}
	for _, id := range planIDs {
		if err := recomputeTotalCalories(db, id); err != nil {
			log.Printf("failed to recompute calories for diet plan %s: %v", id, err)
		}
	}
}

func (h *DietPlanHandler) ListPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plans []models.DietPlan
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch diet plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"diet_plans": plans})
}

func (h *DietPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plan models.DietPlan
	if err := h.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("weekday ASC, position ASC")
		}).
		Preload("Meals.Meal.Entries.Food").
		First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	var days [7][]models.PlanMeal
	for _, slot := range plan.Meals {
		if slot.Weekday >= 0 && slot.Weekday <= 6 {
			days[slot.Weekday] = append(days[slot.Weekday], slot)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"diet_plan": plan,
		"days":      days,
		"totals":    nutrition.PlanTotals(plan.Meals),
	})
}

func (h *DietPlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req DietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.DietPlan{UserID: userID, Name: req.Name}
	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create diet plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"diet_plan": plan})
}

func (h *DietPlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plan models.DietPlan
	if err := h.db.First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	var req DietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Model(&plan).Update("name", req.Name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update diet plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"diet_plan": plan})
}

func (h *DietPlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var plan models.DietPlan
	if err := h.db.First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diet_plan_id = ?", plan.ID).Delete(&models.PlanMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete diet plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Diet plan deleted successfully", "id": plan.ID})
}

// SetDayMeals replaces one weekday's meal list. Meals keep the order they
// arrive in.
func (h *DietPlanHandler) SetDayMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekday, ok := parseWeekday(c)
	if !ok {
		return
	}

	var plan models.DietPlan
	if err := h.db.First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	var req DayMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.MealIDs) > 0 {
		var count int64
		if err := h.db.Model(&models.Meal{}).
			Where("id IN ? AND user_id = ?", req.MealIDs, userID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify meals"})
			return
		}
		if count != int64(len(req.MealIDs)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "one or more meals do not exist"})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diet_plan_id = ? AND weekday = ?", plan.ID, weekday).
			Delete(&models.PlanMeal{}).Error; err != nil {
			return err
		}
		for i, mealID := range req.MealIDs {
			slot := models.PlanMeal{
				DietPlanID: plan.ID,
				MealID:     mealID,
				Weekday:    weekday,
				Position:   i,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return recomputeTotalCalories(tx, plan.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update diet plan"})
		return
	}

	var slots []models.PlanMeal
	h.db.Preload("Meal.Entries.Food").
		Where("diet_plan_id = ? AND weekday = ?", plan.ID, weekday).
		Order("position ASC").
		Find(&slots)

	c.JSON(http.StatusOK, gin.H{
		"weekday": weekday,
		"meals":   slots,
		"totals":  nutrition.PlanTotals(slots),
	})
}

func (h *DietPlanHandler) GetDayTotals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekday, ok := parseWeekday(c)
	if !ok {
		return
	}

	var plan models.DietPlan
	if err := h.db.
		Preload("Meals.Meal.Entries.Food").
		First(&plan, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekday": weekday,
		"totals":  nutrition.DayTotals(plan.Meals, weekday),
	})
}
