package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/middleware"
	"github.com/fittrack/backend/internal/models"
	"github.com/fittrack/backend/internal/service"
	"github.com/fittrack/backend/internal/workoutstats"
)

type SessionHandler struct {
	db            *gorm.DB
	draftService  service.ISessionDraftService
	statsService  *service.StatsService
	finishLimiter *middleware.RateLimiter
}

func NewSessionHandler(
	db *gorm.DB,
	draftService service.ISessionDraftService,
	statsService *service.StatsService,
	finishLimiter *middleware.RateLimiter,
) *SessionHandler {
	return &SessionHandler{
		db:            db,
		draftService:  draftService,
		statsService:  statsService,
		finishLimiter: finishLimiter,
	}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("", h.CreateSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.GET("/stats/weekly", h.WeeklyStats)
		sessions.GET("/stats/monthly", h.MonthlyStats)
		sessions.GET("/stats/exercise-history", h.ExerciseHistoryStats)

		if h.draftService != nil {
			drafts := sessions.Group("/drafts")
			{
				drafts.POST("", h.StartDraft)
				drafts.GET("/:id", h.GetDraft)
				drafts.POST("/:id/exercises", h.AddDraftExercise)
				drafts.POST("/:id/sets", h.AddDraftSet)
				if h.finishLimiter != nil {
					drafts.POST("/:id/finish", h.finishLimiter.RateLimitMiddleware(), h.FinishDraft)
				} else {
					drafts.POST("/:id/finish", h.FinishDraft)
				}
				drafts.DELETE("/:id", h.AbandonDraft)
			}
		}
	}
}

type CompletedSetRequest struct {
	Reps     int     `json:"reps" binding:"required,gt=0"`
	WeightKg float64 `json:"weight_kg" binding:"gte=0"`
}

type CompletedExerciseRequest struct {
	ExerciseName string                `json:"exercise_name" binding:"required"`
	MuscleGroup  string                `json:"muscle_group"`
	Sets         []CompletedSetRequest `json:"sets"`
}

type SessionRequest struct {
	WorkoutPlanID   *uuid.UUID                 `json:"workout_plan_id,omitempty"`
	PerformedAt     *time.Time                 `json:"performed_at,omitempty"`
	DurationMinutes int                        `json:"duration_minutes" binding:"gte=0"`
	Notes           string                     `json:"notes"`
	Exercises       []CompletedExerciseRequest `json:"exercises"`
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := h.db.Preload("Exercises.Sets").Where("user_id = ?", userID)
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		query = query.Where("performed_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		query = query.Where("performed_at <= ?", t)
	}

	var sessions []models.WorkoutSession
	if err := query.Order("performed_at DESC").Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var session models.WorkoutSession
	if err := h.db.Preload("Exercises.Sets").
		First(&session, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"volume":  workoutstats.Volume(session),
	})
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := buildSession(userID, &req)
	if err := h.db.Create(session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func buildSession(userID uuid.UUID, req *SessionRequest) *models.WorkoutSession {
	performedAt := time.Now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	session := &models.WorkoutSession{
		UserID:          userID,
		WorkoutPlanID:   req.WorkoutPlanID,
		PerformedAt:     performedAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	for i, ex := range req.Exercises {
		completed := models.CompletedExercise{
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Position:     i,
		}
		for j, set := range ex.Sets {
			completed.Sets = append(completed.Sets, models.CompletedSet{
				Position: j,
				Reps:     set.Reps,
				WeightKg: set.WeightKg,
			})
		}
		session.Exercises = append(session.Exercises, completed)
	}
	return session
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WorkoutSession{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully", "id": id})
}

func (h *SessionHandler) loadSessions(c *gin.Context, userID uuid.UUID) ([]models.WorkoutSession, bool) {
	var sessions []models.WorkoutSession
	if err := h.db.Preload("Exercises.Sets").
		Where("user_id = ?", userID).
		Order("performed_at ASC").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return nil, false
	}
	return sessions, true
}

func (h *SessionHandler) WeeklyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessions, ok := h.loadSessions(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": workoutstats.WeeklyRollup(sessions)})
}

func (h *SessionHandler) MonthlyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessions, ok := h.loadSessions(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": workoutstats.MonthlyRollup(sessions)})
}

func (h *SessionHandler) ExerciseHistoryStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	name := c.Query("exercise")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exercise query parameter is required"})
		return
	}

	sessions, ok := h.loadSessions(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exercise": name,
		"history":  workoutstats.ExerciseHistory(sessions, name),
	})
}

type StartDraftRequest struct {
	WorkoutPlanID string `json:"workout_plan_id"`
	Notes         string `json:"notes"`
}

func (h *SessionHandler) StartDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftService.StartDraft(c.Request.Context(), userID, req.WorkoutPlanID, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"draft": draft})
}

func (h *SessionHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type AddDraftExerciseRequest struct {
	ExerciseName string `json:"exercise_name" binding:"required"`
	MuscleGroup  string `json:"muscle_group"`
}

func (h *SessionHandler) AddDraftExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddDraftExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftService.AddExercise(c.Request.Context(), userID, c.Param("id"), req.ExerciseName, req.MuscleGroup)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type AddDraftSetRequest struct {
	ExerciseName string  `json:"exercise_name" binding:"required"`
	Reps         int     `json:"reps" binding:"required,gt=0"`
	WeightKg     float64 `json:"weight_kg" binding:"gte=0"`
}

func (h *SessionHandler) AddDraftSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddDraftSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftService.AddSet(c.Request.Context(), userID, c.Param("id"), req.ExerciseName, service.DraftSet{
		Reps:     req.Reps,
		WeightKg: req.WeightKg,
	})
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type FinishDraftRequest struct {
	DurationMinutes int    `json:"duration_minutes" binding:"gte=0"`
	Notes           string `json:"notes"`
}

// FinishDraft persists the draft as a workout session and removes it from
// Redis.
func (h *SessionHandler) FinishDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FinishDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch draft"})
		return
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = int(time.Since(draft.StartedAt).Minutes())
	}
	notes := draft.Notes
	if req.Notes != "" {
		notes = req.Notes
	}

	session := &models.WorkoutSession{
		UserID:          userID,
		PerformedAt:     draft.StartedAt,
		DurationMinutes: durationMinutes,
		Notes:           notes,
	}
	if draft.WorkoutPlanID != "" {
		if planID, err := uuid.Parse(draft.WorkoutPlanID); err == nil {
			session.WorkoutPlanID = &planID
		}
	}
	for i, ex := range draft.Exercises {
		completed := models.CompletedExercise{
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Position:     i,
		}
		for j, set := range ex.Sets {
			completed.Sets = append(completed.Sets, models.CompletedSet{
				Position: j,
				Reps:     set.Reps,
				WeightKg: set.WeightKg,
			})
		}
		session.Exercises = append(session.Exercises, completed)
	}

	if err := h.db.Create(session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	if err := h.draftService.DeleteDraft(c.Request.Context(), userID, draft.ID); err != nil {
		// Session is already saved; the draft will expire on its own.
		log.Printf("failed to delete session draft %s: %v", draft.ID, err)
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *SessionHandler) AbandonDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to abandon draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft abandoned", "id": c.Param("id")})
}
