package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/internal/database"
)

type Services struct {
	Auth           *AuthService
	Health         *HealthService
	Metrics        *Metrics
	Cache          *RecommendationCache
	Ratings        *RatingService
	Recommendation *RecommendationService
	RateLimit      *RateLimitService
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database, publisher EventPublisher) *Services {
	metrics := NewMetrics(prometheus.DefaultRegisterer, logger)
	cache := NewRecommendationCache(db.Redis, cfg.Recommendation.CacheTTL, logger)

	ratings := NewRatingService(db.PG, cache, publisher, metrics, logger)
	recommendation := NewRecommendationService(ratings, cache, cfg.Recommendation.LimitPerSection, metrics, logger)

	checks := []HealthCheck{
		{Name: "postgresql", Critical: true, Check: db.PG.Ping},
	}
	if db.Redis != nil {
		pingRedis := func(ctx context.Context) error {
			return db.Redis.Ping(ctx).Err()
		}
		checks = append(checks, HealthCheck{Name: "redis", Check: pingRedis})
	}

	return &Services{
		Auth:           NewAuthService(&cfg.Auth, logger),
		Health:         NewHealthService(logger, metrics, checks...),
		Metrics:        metrics,
		Cache:          cache,
		Ratings:        ratings,
		Recommendation: recommendation,
		RateLimit:      NewRateLimitService(&cfg.Security.RateLimit, logger, db.Redis),
	}
}
