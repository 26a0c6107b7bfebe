package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/services"
)

// RateLimit limits requests per authenticated user, or per client IP for
// anonymous callers.
func RateLimit(rateLimitService *services.RateLimitService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimitService.Enabled() {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserFromContext(c); ok {
			key = "user:" + userID.String()
		}

		allowed, info := rateLimitService.IsAllowed(c.Request.Context(), key)
		if info != nil {
			c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime, 10))
		}

		if !allowed {
			logger.WithFields(logrus.Fields{
				"key":   key,
				"limit": info.Limit,
			}).Warn("Rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Too many requests",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
