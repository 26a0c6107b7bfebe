package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Rating         *RatingHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Recommendation, logger),
		Rating:         NewRatingHandler(services.Ratings, logger),
	}
}

// Root answers the service banner.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Anime Recommender API"})
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}
