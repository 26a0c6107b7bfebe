package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/services"
)

// Auth verifies the bearer token when authentication is configured and
// stores the caller's id under "user_id". On routes with a :userId parameter
// the caller may only act on their own id. With auth disabled every request
// passes through.
func Auth(authService *services.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "MISSING_AUTHORIZATION",
					"message": "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "INVALID_AUTHORIZATION_FORMAT",
					"message": "Authorization header must be in format 'Bearer <token>'",
				},
			})
			c.Abort()
			return
		}

		claims, userID, err := authService.ValidateToken(tokenParts[1])
		if err != nil {
			logger.WithError(err).Warn("Invalid JWT token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		if param := c.Param("userId"); param != "" {
			if requested, err := uuid.Parse(param); err == nil && requested != userID {
				logger.WithFields(logrus.Fields{
					"user_id":   userID,
					"requested": requested,
				}).Warn("Token subject does not match requested user")
				c.JSON(http.StatusForbidden, gin.H{
					"error": gin.H{
						"code":    "FORBIDDEN",
						"message": "Token does not grant access to this user",
					},
				})
				c.Abort()
				return
			}
		}

		c.Set("user_id", userID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user id, if any.
func GetUserFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
