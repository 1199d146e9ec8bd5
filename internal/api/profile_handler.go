package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitlog/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request Structs ---

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the account summary with a presigned avatar URL when one exists.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Profile
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetStats godoc
// @Summary Get workout statistics
// @Description Returns totals, current streak and the weekly histogram. Pass ?date=YYYY-MM-DD to also get that day's workouts.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param date query string false "Selected date (YYYY-MM-DD)"
// @Success 200 {object} service.ProfileStats
// @Failure 400 {object} gin.H "Invalid date format"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile/stats [get]
func (h *ProfileHandler) GetStats(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var selectedDate *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid date format '%s', expected YYYY-MM-DD", dateStr))
			return
		}
		selectedDate = &parsed
	}

	statistics, err := h.profileService.Stats(c.Request.Context(), ownerID, selectedDate, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, statistics)
}

// RequestAvatarUpload godoc
// @Summary Request an avatar upload URL
// @Description Issues a presigned PUT URL the client uploads the avatar image to.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AvatarUploadRequest true "Upload details"
// @Success 200 {object} service.AvatarUpload
// @Failure 400 {object} gin.H "Invalid input or unsupported content type"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile/avatar [post]
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), ownerID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedContent) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare avatar upload")
		}
		return
	}

	c.JSON(http.StatusOK, upload)
}
