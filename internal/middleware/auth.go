package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messenger/internal/models"
	"messenger/internal/repository"
	"messenger/internal/token"
)

// UserKey is the context key under which RequireAuth stores the resolved
// *models.User for downstream handlers.
const UserKey = "user"

// unauthorized is the single rejection body. Every failure path returns it,
// so a caller cannot tell a missing token from an expired one or a
// deactivated account.
func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized request"})
	c.Abort()
}

// RequireAuth creates a Gin middleware for JWT authentication. A valid
// signature alone is not enough: the subject must still exist and must not
// be deactivated.
func RequireAuth(issuer *token.Issuer, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetUserByID(claims.SubjectID)
		if err != nil {
			logger.Error("Failed to resolve token subject", zap.Int64("id", claims.SubjectID), zap.Error(err))
			unauthorized(c)
			return
		}
		if user == nil || user.Deactivated == "true" {
			unauthorized(c)
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(UserKey).(*models.User)
}
