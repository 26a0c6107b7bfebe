package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/recommender"
	"github.com/temcen/anirec/pkg/models"
)

// RecommendationService loads a user's ratings and runs the recommender over
// them, caching the result per user.
type RecommendationService struct {
	ratings RatingReader
	cache   *RecommendationCache
	limit   int
	metrics *Metrics
	logger  *logrus.Logger
}

// NewRecommendationService creates a new recommendation service. A
// non-positive limit uses recommender.DefaultLimit.
func NewRecommendationService(
	ratings RatingReader,
	cache *RecommendationCache,
	limit int,
	metrics *Metrics,
	logger *logrus.Logger,
) *RecommendationService {
	if limit <= 0 {
		limit = recommender.DefaultLimit
	}
	return &RecommendationService{
		ratings: ratings,
		cache:   cache,
		limit:   limit,
		metrics: metrics,
		logger:  logger,
	}
}

// GetRecommendations returns the categorized recommendations for a user. The
// only failure is the rating store being unavailable; a user with nothing to
// recommend gets an empty set.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID) (*models.RecommendationResponse, error) {
	startTime := time.Now()

	// Check cache first
	if cached, ok := s.cache.Get(ctx, userID, s.limit); ok {
		cached.CacheHit = true
		s.metrics.RecommendationServed("cache", time.Since(startTime))
		s.logger.WithField("user_id", userID).Debug("Recommendation cache hit")
		return cached, nil
	}

	history, err := s.ratings.GetUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for user %s: %w", userID, err)
	}

	resp := &models.RecommendationResponse{
		UserID:          userID,
		TotalRatings:    len(history),
		Recommendations: recommender.Recommend(history, recommender.WithLimit(s.limit)),
		GeneratedAt:     time.Now().UTC(),
		CacheHit:        false,
	}

	if err := s.cache.Set(ctx, userID, s.limit, resp); err != nil {
		s.logger.WithError(err).Warn("Failed to cache recommendations")
	}

	source := "personalized"
	if len(history) == 0 {
		source = "default"
	}
	s.metrics.RecommendationServed(source, time.Since(startTime))

	s.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"total_ratings": len(history),
		"sections":      len(resp.Recommendations),
		"items":         resp.Recommendations.ItemCount(),
		"latency":       time.Since(startTime),
	}).Info("Recommendations generated")

	return resp, nil
}

// Preview runs the recommender over an ad-hoc history without touching the
// rating store or the cache.
func (s *RecommendationService) Preview(ctx context.Context, ratings []models.Rating, limit int) *models.PreviewResponse {
	startTime := time.Now()
	if limit <= 0 {
		limit = s.limit
	}

	set := recommender.Recommend(ratings, recommender.WithLimit(limit))
	s.metrics.RecommendationServed("preview", time.Since(startTime))

	return &models.PreviewResponse{
		Recommendations: set,
		TotalRatings:    len(ratings),
	}
}
