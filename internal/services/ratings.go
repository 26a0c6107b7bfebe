package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/pkg/models"
)

const (
	MinRating = 1
	MaxRating = 10
)

// ErrInvalidRating is returned for scores outside MinRating..MaxRating.
var ErrInvalidRating = errors.New("rating must be between 1 and 10")

// DatabaseQuerier interface for database operations
type DatabaseQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// RatingService reads and writes user ratings in the ratings table
type RatingService struct {
	db        DatabaseQuerier
	cache     *RecommendationCache
	publisher EventPublisher
	metrics   *Metrics
	logger    *logrus.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(
	db DatabaseQuerier,
	cache *RecommendationCache,
	publisher EventPublisher,
	metrics *Metrics,
	logger *logrus.Logger,
) *RatingService {
	return &RatingService{
		db:        db,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetUserRatings returns a user's ratings in the order they were first
// submitted. Rows are returned as stored, duplicates included.
func (s *RatingService) GetUserRatings(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	query := `
		SELECT anime_id, rating
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.AnimeID, &r.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	return ratings, nil
}

// UpsertRating stores the user's score for an anime, replacing any previous
// score. The boolean reports whether a new row was created.
func (s *RatingService) UpsertRating(ctx context.Context, userID uuid.UUID, animeID, rating int) (*models.Rating, bool, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, false, ErrInvalidRating
	}

	query := `
		INSERT INTO ratings (user_id, anime_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, anime_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING anime_id, rating, (xmax = 0) AS inserted`

	var stored models.Rating
	var inserted bool
	if err := s.db.QueryRow(ctx, query, userID, animeID, rating).Scan(&stored.AnimeID, &stored.Rating, &inserted); err != nil {
		return nil, false, fmt.Errorf("failed to upsert rating: %w", err)
	}

	s.metrics.RatingWritten("upsert")
	s.afterChange(ctx, &models.RatingEvent{
		EventID:   uuid.New(),
		UserID:    userID,
		AnimeID:   animeID,
		Rating:    &stored.Rating,
		Action:    "upsert",
		Timestamp: time.Now().UTC(),
	})

	return &stored, inserted, nil
}

// DeleteRating removes the user's rating for an anime. It reports false when
// there was nothing to delete.
func (s *RatingService) DeleteRating(ctx context.Context, userID uuid.UUID, animeID int) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM ratings WHERE user_id = $1 AND anime_id = $2`, userID, animeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	s.metrics.RatingWritten("delete")
	s.afterChange(ctx, &models.RatingEvent{
		EventID:   uuid.New(),
		UserID:    userID,
		AnimeID:   animeID,
		Action:    "delete",
		Timestamp: time.Now().UTC(),
	})

	return true, nil
}

// afterChange drops cached recommendations and announces the change. Neither
// failure is surfaced: the write already succeeded.
func (s *RatingService) afterChange(ctx context.Context, event *models.RatingEvent) {
	if err := s.cache.InvalidateUser(ctx, event.UserID); err != nil {
		s.logger.WithError(err).WithField("user_id", event.UserID).Warn("Failed to invalidate cached recommendations")
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRating(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  event.UserID,
			"anime_id": event.AnimeID,
			"action":   event.Action,
		}).Warn("Failed to publish rating event")
	}
}
