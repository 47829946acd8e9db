package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacthub/internal/config"
	"contacthub/internal/models"
	"contacthub/internal/security"
)

// CurrentUserKey is the gin context key holding the authenticated user.
const CurrentUserKey = "current_user"

// UserSource resolves token subjects to user rows.
type UserSource interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

func Auth(cfg *config.AppConfig, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unknown user"})
			return
		}

		// Deactivation takes effect on the next request, token or not.
		if user.Status != models.UserStatusActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "account is not active"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
