package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/pkg/models"
)

const defaultCacheTTL = 15 * time.Minute

// RecommendationCache keeps computed recommendation responses in Redis. A nil
// cache, or one without a client, misses on every read and ignores writes.
type RecommendationCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRecommendationCache creates a cache; client may be nil.
func NewRecommendationCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RecommendationCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RecommendationCache{
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RecommendationCache) enabled() bool {
	return c != nil && c.redis != nil
}

func (c *RecommendationCache) buildKey(userID uuid.UUID, limit int) string {
	return fmt.Sprintf("recommendations:%s:%d", userID.String(), limit)
}

// Get returns the cached response for a user and section limit.
func (c *RecommendationCache) Get(ctx context.Context, userID uuid.UUID, limit int) (*models.RecommendationResponse, bool) {
	if !c.enabled() {
		return nil, false
	}

	cached, err := c.redis.Get(ctx, c.buildKey(userID, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Debug("Recommendation cache read failed")
		}
		return nil, false
	}

	var resp models.RecommendationResponse
	if err := json.Unmarshal(cached, &resp); err != nil {
		c.logger.WithError(err).Warn("Discarding unreadable cached recommendations")
		return nil, false
	}

	return &resp, true
}

// Set stores a response under the user's key.
func (c *RecommendationCache) Set(ctx context.Context, userID uuid.UUID, limit int, resp *models.RecommendationResponse) error {
	if !c.enabled() {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	return c.redis.Set(ctx, c.buildKey(userID, limit), data, c.ttl).Err()
}

// InvalidateUser drops every cached response of a user.
func (c *RecommendationCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if !c.enabled() {
		return nil
	}

	pattern := fmt.Sprintf("recommendations:%s:*", userID.String())
	var keys []string
	iter := c.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		return c.redis.Del(ctx, keys...).Err()
	}
	return nil
}
