package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/api"
	"github.com/fittrack/backend/internal/database"
	"github.com/fittrack/backend/internal/middleware"
	"github.com/fittrack/backend/internal/service"
)

// Handlers collects every API handler the router mounts.
type Handlers struct {
	Auth        *api.AuthHandler
	Profile     *api.ProfileHandler
	Exercise    *api.ExerciseHandler
	WorkoutPlan *api.WorkoutPlanHandler
	Session     *api.SessionHandler
	Food        *api.FoodHandler
	Meal        *api.MealHandler
	DietPlan    *api.DietPlanHandler
	Goal        *api.GoalHandler
	Reminder    *api.ReminderHandler
	HealthTip   *api.HealthTipHandler
	Dashboard   *api.DashboardHandler

	// Limiters back the rate-limit status endpoints.
	WeightLimiter *middleware.RateLimiter
	FinishLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers, authService service.IAuthService, db *gorm.DB, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Profile.RegisterRoutes(protected)
		h.Exercise.RegisterRoutes(protected)
		h.WorkoutPlan.RegisterRoutes(protected)
		h.Session.RegisterRoutes(protected)
		h.Food.RegisterRoutes(protected)
		h.Meal.RegisterRoutes(protected)
		h.DietPlan.RegisterRoutes(protected)
		h.Goal.RegisterRoutes(protected)
		h.Reminder.RegisterRoutes(protected)
		h.HealthTip.RegisterRoutes(protected)
		h.Dashboard.RegisterRoutes(protected)
		api.RegisterRateLimitRoutes(protected, h.WeightLimiter, h.FinishLimiter)
	}

	return router
}
