package main

import (
	"log"

	"github.com/fittrack/backend/config"
	"github.com/fittrack/backend/internal/database"
	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
)

// Per-100g figures from the USDA FoodData Central database, rounded.
var foods = []models.Food{
	{Name: "Chicken Breast", Category: "protein", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0},
	{Name: "Salmon", Category: "protein", Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Fiber: 0},
	{Name: "Ground Beef (90% lean)", Category: "protein", Calories: 176, Protein: 20, Carbs: 0, Fat: 10, Fiber: 0},
	{Name: "Egg", Category: "protein", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0},
	{Name: "Tofu", Category: "protein", Calories: 76, Protein: 8, Carbs: 1.9, Fat: 4.8, Fiber: 0.3},
	{Name: "Greek Yogurt", Category: "dairy", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4, Fiber: 0},
	{Name: "Cottage Cheese", Category: "dairy", Calories: 98, Protein: 11, Carbs: 3.4, Fat: 4.3, Fiber: 0},
	{Name: "Whole Milk", Category: "dairy", Calories: 61, Protein: 3.2, Carbs: 4.8, Fat: 3.3, Fiber: 0},
	{Name: "Cheddar Cheese", Category: "dairy", Calories: 403, Protein: 25, Carbs: 1.3, Fat: 33, Fiber: 0},
	{Name: "White Rice (cooked)", Category: "grain", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4},
	{Name: "Brown Rice (cooked)", Category: "grain", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8},
	{Name: "Oats", Category: "grain", Calories: 389, Protein: 17, Carbs: 66, Fat: 6.9, Fiber: 11},
	{Name: "Whole Wheat Bread", Category: "grain", Calories: 247, Protein: 13, Carbs: 41, Fat: 3.4, Fiber: 7},
	{Name: "Pasta (cooked)", Category: "grain", Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Fiber: 1.8},
	{Name: "Quinoa (cooked)", Category: "grain", Calories: 120, Protein: 4.4, Carbs: 21, Fat: 1.9, Fiber: 2.8},
	{Name: "Sweet Potato", Category: "vegetable", Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1, Fiber: 3},
	{Name: "Broccoli", Category: "vegetable", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6},
	{Name: "Spinach", Category: "vegetable", Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4, Fiber: 2.2},
	{Name: "Carrot", Category: "vegetable", Calories: 41, Protein: 0.9, Carbs: 10, Fat: 0.2, Fiber: 2.8},
	{Name: "Tomato", Category: "vegetable", Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2, Fiber: 1.2},
	{Name: "Banana", Category: "fruit", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6},
	{Name: "Apple", Category: "fruit", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4},
	{Name: "Orange", Category: "fruit", Calories: 47, Protein: 0.9, Carbs: 12, Fat: 0.1, Fiber: 2.4},
	{Name: "Blueberries", Category: "fruit", Calories: 57, Protein: 0.7, Carbs: 14, Fat: 0.3, Fiber: 2.4},
	{Name: "Avocado", Category: "fruit", Calories: 160, Protein: 2, Carbs: 8.5, Fat: 15, Fiber: 6.7},
	{Name: "Almonds", Category: "nuts", Calories: 579, Protein: 21, Carbs: 22, Fat: 50, Fiber: 13},
	{Name: "Peanut Butter", Category: "nuts", Calories: 588, Protein: 25, Carbs: 20, Fat: 50, Fiber: 6},
	{Name: "Walnuts", Category: "nuts", Calories: 654, Protein: 15, Carbs: 14, Fat: 65, Fiber: 6.7},
	{Name: "Olive Oil", Category: "fat", Calories: 884, Protein: 0, Carbs: 0, Fat: 100, Fiber: 0},
	{Name: "Butter", Category: "fat", Calories: 717, Protein: 0.9, Carbs: 0.1, Fat: 81, Fiber: 0},
	{Name: "Lentils (cooked)", Category: "legume", Calories: 116, Protein: 9, Carbs: 20, Fat: 0.4, Fiber: 7.9},
	{Name: "Chickpeas (cooked)", Category: "legume", Calories: 164, Protein: 8.9, Carbs: 27, Fat: 2.6, Fiber: 7.6},
	{Name: "Black Beans (cooked)", Category: "legume", Calories: 132, Protein: 8.9, Carbs: 24, Fat: 0.5, Fiber: 8.7},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeded := 0
	for _, food := range foods {
		var count int64
		if err := db.Model(&models.Food{}).
			Where("name = ? AND user_id IS NULL", food.Name).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing food %q: %v", food.Name, err)
		}
		if count > 0 {
			continue
		}

		food.Embedding = service.GenerateEmbedding(food.Name)
		if err := db.Create(&food).Error; err != nil {
			log.Fatalf("Failed to seed food %q: %v", food.Name, err)
		}
		seeded++
	}

	log.Printf("Seeded %d foods (%d already present)", seeded, len(foods)-seeded)
}
