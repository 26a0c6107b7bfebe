package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/services"
	"github.com/temcen/anirec/pkg/models"
)

type RatingHandler struct {
	ratings   services.RatingServiceInterface
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewRatingHandler(ratings services.RatingServiceInterface, logger *logrus.Logger) *RatingHandler {
	return &RatingHandler{
		ratings:   ratings,
		validator: validator.New(),
		logger:    logger,
	}
}

func (h *RatingHandler) List(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ratings, err := h.ratings.GetUserRatings(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to load ratings")
		errorResponse(c, http.StatusInternalServerError, "RATINGS_UNAVAILABLE", "Failed to load ratings")
		return
	}

	c.JSON(http.StatusOK, models.UserRatingsResponse{
		UserID:  userID,
		Ratings: ratings,
		Total:   len(ratings),
	})
}

// Upsert creates the user's rating for an anime, or replaces the existing
// one. Responds 201 on create and 200 on update.
func (h *RatingHandler) Upsert(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req models.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Failed to bind rating request")
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	rating, created, err := h.ratings.UpsertRating(c.Request.Context(), userID, req.AnimeID, req.Rating)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRating) {
			errorResponse(c, http.StatusBadRequest, "INVALID_RATING", err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to save rating")
		errorResponse(c, http.StatusInternalServerError, "RATING_FAILED", "Failed to save rating")
		return
	}

	status := http.StatusOK
	message := "Rating updated"
	if created {
		status = http.StatusCreated
		message = "Rating created"
	}

	c.JSON(status, gin.H{
		"data":    rating,
		"message": message,
	})
}

func (h *RatingHandler) Delete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil || animeID < 1 {
		errorResponse(c, http.StatusBadRequest, "INVALID_ANIME_ID", "Anime ID must be a positive integer")
		return
	}

	deleted, err := h.ratings.DeleteRating(c.Request.Context(), userID, animeID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to delete rating")
		errorResponse(c, http.StatusInternalServerError, "RATING_FAILED", "Failed to delete rating")
		return
	}
	if !deleted {
		errorResponse(c, http.StatusNotFound, "RATING_NOT_FOUND", "Rating not found")
		return
	}

	c.Status(http.StatusNoContent)
}
