package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/middleware"
	"github.com/fittrack/backend/internal/service"
	"github.com/fittrack/backend/internal/types"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	profileService service.IProfileService
	photoService   *service.PhotoService
	statsService   *service.StatsService
	weightLimiter  *middleware.RateLimiter
}

func NewProfileHandler(
	profileService service.IProfileService,
	photoService *service.PhotoService,
	statsService *service.StatsService,
	weightLimiter *middleware.RateLimiter,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		photoService:   photoService,
		statsService:   statsService,
		weightLimiter:  weightLimiter,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/avatar", h.UploadAvatar)
		profile.POST("/photos", h.UploadProgressPhoto)
		profile.GET("/photos/url", h.PhotoURL)
		weights := profile.Group("/weights")
		{
			weights.GET("", h.ListWeights)
			if h.weightLimiter != nil {
				weights.POST("", h.weightLimiter.RateLimitMiddleware(), h.LogWeight)
			} else {
				weights.POST("", h.LogWeight)
			}
			weights.DELETE("/:id", h.DeleteWeight)
		}
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"metrics": h.profileService.Metrics(profile, time.Now()),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// readImageUpload pulls a bounded multipart image out of the request. It
// writes the error response itself when the upload is missing or too large.
func readImageUpload(c *gin.Context, field string) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " file is required"})
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return nil, "", false
	}
	if len(data) > maxAvatarBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": field + " exceeds 5MB limit"})
		return nil, "", false
	}
	return data, header.Header.Get("Content-Type"), true
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	data, contentType, ok := readImageUpload(c, "avatar")
	if !ok {
		return
	}

	url, key, err := h.photoService.UploadAvatar(c.Request.Context(), userID, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &types.UpdateProfileRequest{AvatarURL: &url})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "avatar_url": url, "key": key})
}

func (h *ProfileHandler) UploadProgressPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	data, contentType, ok := readImageUpload(c, "photo")
	if !ok {
		return
	}

	url, key, err := h.photoService.UploadProgressPhoto(c.Request.Context(), userID, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo_url": url, "key": key})
}

// PhotoURL presigns a GET for one of the user's own stored photos, for
// buckets without public read access.
func (h *ProfileHandler) PhotoURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	key := c.Query("key")
	avatarPrefix := "avatars/" + userID.String() + "/"
	progressPrefix := "progress/" + userID.String() + "/"
	if !strings.HasPrefix(key, avatarPrefix) && !strings.HasPrefix(key, progressPrefix) {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}

	url, err := h.photoService.PresignedURL(c.Request.Context(), key, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type LogWeightRequest struct {
	WeightKg float64    `json:"weight_kg" binding:"required,gt=0"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
	Note     string     `json:"note"`
}

func (h *ProfileHandler) LogWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	entry, err := h.profileService.LogWeight(c.Request.Context(), userID, req.WeightKg, loggedAt, req.Note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log weight"})
		return
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *ProfileHandler) ListWeights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.profileService.ListWeights(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weight entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ProfileHandler) DeleteWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.profileService.DeleteWeight(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "weight entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete weight entry"})
		return
	}

	if h.statsService != nil {
		h.statsService.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight entry deleted successfully", "id": entryID})
}
