package main

import (
	"log"

	"github.com/fittrack/backend/config"
	"github.com/fittrack/backend/internal/database"
	"github.com/fittrack/backend/internal/models"
)

var tips = []models.HealthTip{
	{Category: "hydration", Text: "Drink a glass of water first thing in the morning to rehydrate after sleep."},
	{Category: "hydration", Text: "Aim for roughly 2 liters of water a day, more on training days."},
	{Category: "nutrition", Text: "Build each meal around a protein source to stay full longer."},
	{Category: "nutrition", Text: "Fill half your plate with vegetables before adding anything else."},
	{Category: "nutrition", Text: "Prep meals in batches so a busy day never ends in takeout."},
	{Category: "nutrition", Text: "Fiber keeps you satiated. Beans, oats and berries are easy sources."},
	{Category: "training", Text: "Warm up with five minutes of light cardio before lifting."},
	{Category: "training", Text: "Progressive overload beats random variety. Add a rep or a kilo each week."},
	{Category: "training", Text: "Rest 2-3 minutes between heavy compound sets for better performance."},
	{Category: "training", Text: "Consistency beats intensity. Three sessions every week outwork six sessions once."},
	{Category: "recovery", Text: "Aim for 7-9 hours of sleep. Most muscle repair happens overnight."},
	{Category: "recovery", Text: "A light walk on rest days speeds up recovery more than staying still."},
	{Category: "recovery", Text: "Persistent joint pain is a signal to deload, not to push through."},
	{Category: "habits", Text: "Weigh yourself at the same time of day for comparable readings."},
	{Category: "habits", Text: "Track workouts as you go. Memory flatters everyone."},
	{Category: "habits", Text: "Set goals you control, like sessions per week, not just outcomes."},
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
	for _, tip := range tips {
		var count int64
		if err := db.Model(&models.HealthTip{}).
			Where("text = ?", tip.Text).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing tip: %v", err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&tip).Error; err != nil {
			log.Fatalf("Failed to seed tip: %v", err)
		}
		seeded++
	}

	log.Printf("Seeded %d health tips (%d already present)", seeded, len(tips)-seeded)
}
