package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"messenger/internal/middleware"
	"messenger/internal/models"
	"messenger/internal/repository"
)

type ProfileHandler interface {
	GetAllProfiles(c *gin.Context)
	GetProfileByID(c *gin.Context)
	CreateProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

type profileHandler struct {
	profileRepo repository.ProfileRepository
	log         *logrus.Logger
}

func NewProfileHandler(profileRepo repository.ProfileRepository, log *logrus.Logger) ProfileHandler {
	return &profileHandler{profileRepo: profileRepo, log: log}
}

// GetAllProfiles handles GET /api/profiles
func (h *profileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.profileRepo.GetAllProfiles()
	if err != nil {
		h.log.Errorf("Failed to get profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profiles"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetProfileByID handles GET /api/profiles/:profile_id
func (h *profileHandler) GetProfileByID(c *gin.Context) {
	idStr := c.Param("profile_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID"})
		return
	}

	profile, err := h.profileRepo.GetProfileByID(id)
	if err != nil {
		h.log.Errorf("Failed to get profile %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile doesn't exist"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type CreateProfileRequest struct {
	Username  *string `json:"username"`
	Bio       string  `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
}

// CreateProfile handles POST /api/profiles
func (h *profileHandler) CreateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Username == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'username' in request body"})
		return
	}

	profile := &models.Profile{
		UserID:    user.ID,
		Username:  *req.Username,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	if err := h.profileRepo.CreateProfile(profile); err != nil {
		h.log.Errorf("Failed to create profile for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/profiles/%d", profile.ID))
	c.JSON(http.StatusCreated, profile)
}

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile handles PATCH /api/profiles/:profile_id
func (h *profileHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	idStr := c.Param("profile_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID"})
		return
	}

	profile, err := h.profileRepo.GetProfileByID(id)
	if err != nil {
		h.log.Errorf("Failed to get profile %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile doesn't exist"})
		return
	}
	if profile.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Profile belongs to a different user"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := repository.ProfileUpdate{
		Username:  req.Username,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	if err := h.profileRepo.UpdateProfile(id, update); err != nil {
		h.log.Errorf("Failed to update profile %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.Status(http.StatusNoContent)
}
