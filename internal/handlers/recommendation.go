package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/services"
	"github.com/temcen/anirec/pkg/models"
)

type RecommendationHandler struct {
	recommendations services.RecommendationServiceInterface
	validator       *validator.Validate
	logger          *logrus.Logger
}

func NewRecommendationHandler(
	recommendations services.RecommendationServiceInterface,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		validator:       validator.New(),
		logger:          logger,
	}
}

// Get serves the categorized recommendations for the user in the path.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	resp, err := h.recommendations.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to generate recommendations")
		errorResponse(c, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Preview runs the recommender over the ratings in the request body.
func (h *RecommendationHandler) Preview(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Failed to bind preview request")
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.recommendations.Preview(c.Request.Context(), req.Ratings, req.Limit))
}
