package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/nutrition"
	"github.com/fittrack/backend/internal/workoutstats"
)

// statsCacheTTL bounds how stale a cached dashboard can get.
const statsCacheTTL = 5 * time.Minute

// DashboardStats is the aggregate view served by the dashboard endpoint.
type DashboardStats struct {
	CurrentStreak    int         `json:"current_streak"`
	LongestStreak    int         `json:"longest_streak"`
	SessionsThisWeek int         `json:"sessions_this_week"`
	VolumeThisWeek   float64     `json:"volume_this_week"`
	LatestWeightKg   float64     `json:"latest_weight_kg"`
	Metrics          BodyMetrics `json:"metrics"`
	TodayCalories    float64     `json:"today_calories"`
	TotalSessions    int         `json:"total_sessions"`
}

// StatsService computes dashboard statistics, caching results in Redis.
type StatsService struct {
	db      *gorm.DB
	redis   *redis.Client
	profile *ProfileService
}

func NewStatsService(db *gorm.DB, redisClient *redis.Client, profile *ProfileService) *StatsService {
	return &StatsService{
		db:      db,
		redis:   redisClient,
		profile: profile,
	}
}

func statsKey(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard_stats:%s", userID)
}

// Dashboard returns the user's dashboard stats, from cache when fresh.
func (s *StatsService) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardStats, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, statsKey(userID)).Bytes(); err == nil {
			var cached DashboardStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.compute(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsKey(userID), data, statsCacheTTL).Err(); err != nil {
				log.Printf("failed to cache dashboard stats: %v", err)
			}
		}
	}
	return stats, nil
}

// Invalidate drops the cached dashboard for a user. Called after session and
// weight writes.
func (s *StatsService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsKey(userID)).Err(); err != nil {
		log.Printf("failed to invalidate dashboard stats: %v", err)
	}
}

func (s *StatsService) compute(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardStats, error) {
	var sessions []models.WorkoutSession
	if err := s.db.WithContext(ctx).
		Preload("Exercises.Sets").
		Where("user_id = ?", userID).
		Order("performed_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		CurrentStreak: workoutstats.CurrentStreak(sessions, now),
		LongestStreak: workoutstats.LongestStreak(sessions),
		TotalSessions: len(sessions),
	}

	year, week := now.ISOWeek()
	for _, session := range sessions {
		y, w := session.PerformedAt.ISOWeek()
		if y == year && w == week {
			stats.SessionsThisWeek++
			stats.VolumeThisWeek += workoutstats.Volume(session)
		}
	}

	// Latest weight and body metrics; a missing profile leaves zeros.
	if profile, err := s.profile.GetProfile(ctx, userID); err == nil {
		stats.LatestWeightKg = profile.WeightKg
		stats.Metrics = s.profile.Metrics(profile, now)
	}

	var latest models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		First(&latest).Error; err == nil {
		stats.LatestWeightKg = latest.WeightKg
	}

	// Today's calories come from the most recently updated diet plan.
	var plan models.DietPlan
	if err := s.db.WithContext(ctx).
		Preload("Meals.Meal.Entries.Food").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&plan).Error; err == nil {
		stats.TodayCalories = nutrition.DayTotals(plan.Meals, int(now.Weekday())).Calories
	}

	return stats, nil
}
