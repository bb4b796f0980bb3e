package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"messenger/internal/middleware"
	"messenger/internal/service"
)

type AuthHandler interface {
	Login(c *gin.Context)
	Refresh(c *gin.Context)
}

type authHandler struct {
	userService service.UserService
	log         *logrus.Logger
}

func NewAuthHandler(userService service.UserService, log *logrus.Logger) AuthHandler {
	return &authHandler{userService: userService, log: log}
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	required := []struct {
		name  string
		value *string
	}{
		{"email", req.Email},
		{"password", req.Password},
	}
	for _, field := range required {
		if field.value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing '" + field.name + "' in request body"})
			return
		}
	}

	tokenString, err := h.userService.Login(*req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf("Failed to login user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authToken": tokenString})
}

// Refresh handles PUT /api/auth/refresh
func (h *authHandler) Refresh(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tokenString, err := h.userService.Refresh(user)
	if err != nil {
		h.log.Errorf("Failed to refresh token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authToken": tokenString})
}
