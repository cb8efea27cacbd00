package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/nutrition"
)

type mealResponse struct {
	Meal   models.Meal      `json:"meal"`
	Totals nutrition.Totals `json:"totals"`
}

func setupMealRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := setupTestDB(t)
	token, authService := newTestUser(t, db, "cook@example.com")
	handler := NewMealHandler(db)
	router := protectedRouter(authService, handler.RegisterRoutes)
	return router, db, token
}

func TestCreateMealComputesTotals(t *testing.T) {
	router, db, token := setupMealRouter(t)

	oats := seedGlobalFood(t, db, "Oats", "grain", 389)
	oats.Protein = 17
	require.NoError(t, db.Save(&oats).Error)
	milk := seedGlobalFood(t, db, "Whole Milk", "dairy", 61)

	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", token, gin.H{
		"name": "Breakfast",
		"entries": []gin.H{
			{"food_id": oats.ID, "quantity_grams": 50},
			{"food_id": milk.ID, "quantity_grams": 200},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp mealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Meal.Entries, 2)
	// 389*0.5 + 61*2 = 316.5 kcal, protein 17*0.5 = 8.5
	assert.InDelta(t, 316.5, resp.Totals.Calories, 0.001)
	assert.InDelta(t, 8.5, resp.Totals.Protein, 0.001)
}

func TestCreateMealRejectsUnknownFood(t *testing.T) {
	router, _, token := setupMealRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", token, gin.H{
		"name": "Mystery",
		"entries": []gin.H{
			{"food_id": uuid.New(), "quantity_grams": 100},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMealRejectsForeignFood(t *testing.T) {
	router, db, token := setupMealRouter(t)

	otherID := uuid.New()
	private := models.Food{UserID: &otherID, Name: "Private Sauce", Calories: 90}
	require.NoError(t, db.Create(&private).Error)

	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", token, gin.H{
		"name": "Sneaky",
		"entries": []gin.H{
			{"food_id": private.ID, "quantity_grams": 10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMealReplacesEntries(t *testing.T) {
	router, db, token := setupMealRouter(t)

	oats := seedGlobalFood(t, db, "Oats", "grain", 389)
	banana := seedGlobalFood(t, db, "Banana", "fruit", 89)

	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", token, gin.H{
		"name": "Snack",
		"entries": []gin.H{
			{"food_id": oats.ID, "quantity_grams": 40},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created mealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPut, "/api/v1/meals/"+created.Meal.ID.String(), token, gin.H{
		"name": "Fruit Snack",
		"entries": []gin.H{
			{"food_id": banana.ID, "quantity_grams": 120},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated mealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Fruit Snack", updated.Meal.Name)
	require.Len(t, updated.Meal.Entries, 1)
	assert.Equal(t, banana.ID, updated.Meal.Entries[0].FoodID)
	assert.InDelta(t, 89*1.2, updated.Totals.Calories, 0.001)

	var entryCount int64
	db.Model(&models.FoodEntry{}).Where("meal_id = ?", created.Meal.ID).Count(&entryCount)
	assert.EqualValues(t, 1, entryCount)
}

func TestDeleteMealCleansPlanSlots(t *testing.T) {
	router, db, token := setupMealRouter(t)

	oats := seedGlobalFood(t, db, "Oats", "grain", 389)
	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", token, gin.H{
		"name": "Porridge",
		"entries": []gin.H{
			{"food_id": oats.ID, "quantity_grams": 60},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created mealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "cook@example.com").Error)
	plan := models.DietPlan{UserID: user.ID, Name: "Bulk"}
	require.NoError(t, db.Create(&plan).Error)
	slot := models.PlanMeal{DietPlanID: plan.ID, MealID: created.Meal.ID, Weekday: 1}
	require.NoError(t, db.Create(&slot).Error)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/meals/"+created.Meal.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slotCount int64
	db.Model(&models.PlanMeal{}).Where("diet_plan_id = ?", plan.ID).Count(&slotCount)
	assert.EqualValues(t, 0, slotCount)
}
