package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/temcen/anirec/pkg/models"
)

// RatingServiceInterface defines the rating store operations
type RatingServiceInterface interface {
	GetUserRatings(ctx context.Context, userID uuid.UUID) ([]models.Rating, error)
	UpsertRating(ctx context.Context, userID uuid.UUID, animeID, rating int) (*models.Rating, bool, error)
	DeleteRating(ctx context.Context, userID uuid.UUID, animeID int) (bool, error)
}

// RatingReader is the part of the rating store recommendations depend on
type RatingReader interface {
	GetUserRatings(ctx context.Context, userID uuid.UUID) ([]models.Rating, error)
}

// RecommendationServiceInterface defines the recommendation operations exposed over HTTP
type RecommendationServiceInterface interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID) (*models.RecommendationResponse, error)
	Preview(ctx context.Context, ratings []models.Rating, limit int) *models.PreviewResponse
}

// EventPublisher publishes rating change events
type EventPublisher interface {
	PublishRating(ctx context.Context, event *models.RatingEvent) error
}
