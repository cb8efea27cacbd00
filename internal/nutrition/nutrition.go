// Package nutrition aggregates macro values across food entries. Foods store
// nutrition per 100g, so each entry contributes value * quantity / 100.
package nutrition

import "github.com/fittrack/backend/internal/models"

// Totals holds summed macro values for a set of food entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add returns the element-wise sum of two totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
	}
}

// FoodTotals scales a food's per-100g values to the given quantity in grams.
func FoodTotals(food models.Food, quantityGrams float64) Totals {
	if quantityGrams <= 0 {
		return Totals{}
	}
	factor := quantityGrams / 100
	return Totals{
		Calories: food.Calories * factor,
		Protein:  food.Protein * factor,
		Carbs:    food.Carbs * factor,
		Fat:      food.Fat * factor,
		Fiber:    food.Fiber * factor,
	}
}

// MealTotals sums the totals of all entries in a meal. Entries whose food was
// not loaded are skipped. An empty list yields zero totals.
func MealTotals(entries []models.FoodEntry) Totals {
	var total Totals
	for _, e := range entries {
		if e.Food == nil {
			continue
		}
		total = total.Add(FoodTotals(*e.Food, e.QuantityGrams))
	}
	return total
}

// PlanTotals sums the totals of every meal slot in a diet plan across all
// seven weekdays.
func PlanTotals(meals []models.PlanMeal) Totals {
	var total Totals
	for _, pm := range meals {
		if pm.Meal == nil {
			continue
		}
		total = total.Add(MealTotals(pm.Meal.Entries))
	}
	return total
}

// DayTotals sums the totals of the meal slots assigned to one weekday.
func DayTotals(meals []models.PlanMeal, weekday int) Totals {
	var total Totals
	for _, pm := range meals {
		if pm.Weekday != weekday || pm.Meal == nil {
			continue
		}
		total = total.Add(MealTotals(pm.Meal.Entries))
	}
	return total
}
