package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/config"
)

type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime int64
}

// RateLimitService counts requests per key in a Redis sorted set over a
// sliding window. Without Redis, or with a zero limit, every request is
// allowed.
type RateLimitService struct {
	limit       int
	window      time.Duration
	logger      *logrus.Logger
	redisClient *redis.Client
}

func NewRateLimitService(cfg *config.RateLimitConfig, logger *logrus.Logger, redisClient *redis.Client) *RateLimitService {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimitService{
		limit:       cfg.Requests,
		window:      window,
		logger:      logger,
		redisClient: redisClient,
	}
}

func (s *RateLimitService) Enabled() bool {
	return s != nil && s.redisClient != nil && s.limit > 0
}

func (s *RateLimitService) CheckLimit(ctx context.Context, key string) (*RateLimitInfo, error) {
	now := time.Now()
	windowStart := now.Add(-s.window)
	redisKey := fmt.Sprintf("rate_limit:%s", key)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipe := s.redisClient.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, redisKey, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	remaining := s.limit - int(countCmd.Val())
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitInfo{
		Limit:     s.limit,
		Remaining: remaining,
		ResetTime: now.Add(s.window).Unix(),
	}, nil
}

// IsAllowed reports whether another request under key fits in the window.
// Redis failures are logged and the request is let through.
func (s *RateLimitService) IsAllowed(ctx context.Context, key string) (bool, *RateLimitInfo) {
	if !s.Enabled() {
		return true, nil
	}

	info, err := s.CheckLimit(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("Rate limit check failed")
		return true, nil
	}

	return info.Remaining > 0, info
}
