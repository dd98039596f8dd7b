package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kvkstats/ranking-api/internal/models"
)

// RedisScoreCache stores breakdowns as JSON under a formula-versioned key
type RedisScoreCache struct {
	client CacheClient
	ttl    time.Duration
}

func NewRedisScoreCache(client CacheClient, ttl time.Duration) *RedisScoreCache {
	return &RedisScoreCache{client: client, ttl: ttl}
}

func scoreCacheKey(fingerprint string) string {
	return fmt.Sprintf("kvk:score:%s:%s", FormulaVersion, fingerprint)
}

func (c *RedisScoreCache) Get(ctx context.Context, fingerprint string) (*models.ScoreBreakdown, bool, error) {
	val, err := c.client.Get(ctx, scoreCacheKey(fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("score cache get: %w", err)
	}

	var b models.ScoreBreakdown
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, false, fmt.Errorf("score cache decode: %w", err)
	}
	return &b, true, nil
}

func (c *RedisScoreCache) Set(ctx context.Context, fingerprint string, b *models.ScoreBreakdown) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("score cache encode: %w", err)
	}
	if err := c.client.Set(ctx, scoreCacheKey(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("score cache set: %w", err)
	}
	return nil
}
