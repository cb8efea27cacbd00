package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fittrack/backend/internal/middleware"
)

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
// without consuming quota.
func RegisterRateLimitRoutes(router *gin.RouterGroup, weightLimiter, finishLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	{
		if weightLimiter != nil {
			rateLimits.GET("/weight-entries", rateLimitStatus(weightLimiter))
		}
		if finishLimiter != nil {
			rateLimits.GET("/session-finish", rateLimitStatus(finishLimiter))
		}
	}
}

func rateLimitStatus(limiter *middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     limiter.Window().String(),
		})
	}
}
