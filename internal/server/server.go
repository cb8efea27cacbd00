package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fittrack/backend/config"
	"github.com/fittrack/backend/internal/api"
	"github.com/fittrack/backend/internal/database"
	"github.com/fittrack/backend/internal/middleware"
	"github.com/fittrack/backend/internal/router"
	"github.com/fittrack/backend/internal/service"
)

// Server owns the HTTP listener and the resources the handlers depend on.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	config *config.Config
}

// Engine exposes the underlying router, used by tests to drive requests
// without a network listener.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// New builds the full application: database, Redis, services, handlers and
// routes. S3 is optional; photo uploads return an error when it is absent.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	var photoService *service.PhotoService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, photo uploads disabled: %v", err)
	} else {
		photoService = service.NewPhotoService(s3cfg)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	draftService := service.NewSessionDraftService(redisClient)
	statsService := service.NewStatsService(db, redisClient, profileService)
	weightLimiter := middleware.NewWeightEntryRateLimiter(redisClient)
	finishLimiter := middleware.NewSessionFinishRateLimiter(redisClient)

	handlers := router.Handlers{
		Auth: api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(
			profileService,
			photoService,
			statsService,
			weightLimiter,
		),
		Exercise:    api.NewExerciseHandler(db),
		WorkoutPlan: api.NewWorkoutPlanHandler(db),
		Session: api.NewSessionHandler(
			db,
			draftService,
			statsService,
			finishLimiter,
		),
		Food:          api.NewFoodHandler(db),
		Meal:          api.NewMealHandler(db),
		DietPlan:      api.NewDietPlanHandler(db),
		Goal:          api.NewGoalHandler(db),
		Reminder:      api.NewReminderHandler(db),
		HealthTip:     api.NewHealthTipHandler(db),
		Dashboard:     api.NewDashboardHandler(db, statsService),
		WeightLimiter: weightLimiter,
		FinishLimiter: finishLimiter,
	}

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.SetupRouter(handlers, authService, db, cfg.CORSOrigins)

	return &Server{
		engine: engine,
		db:     db,
		redis:  redisClient,
		config: cfg,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Printf("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener and closes database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
	return s.redis.Close()
}
