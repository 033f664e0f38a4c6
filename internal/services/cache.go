package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

const DefaultSnapshotKey = "quizdash:snapshot:v1"

// RedisKV is the part of *redis.Client the snapshot cache uses.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type cachedSnapshot struct {
	FetchedAt time.Time             `json:"fetched_at"`
	Responses []models.QuizResponse `json:"responses"`
}

// RedisSnapshotCache stores the last snapshot as JSON under one key.
type RedisSnapshotCache struct {
	client RedisKV
	key    string
	ttl    time.Duration
}

func NewRedisSnapshotCache(client RedisKV, key string, ttl time.Duration) *RedisSnapshotCache {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSnapshotCache{client: client, key: key, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) ([]models.QuizResponse, time.Time, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("reading snapshot cache: %w", err)
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decoding snapshot cache: %w", err)
	}
	return cached.Responses, cached.FetchedAt, true, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, responses []models.QuizResponse, fetchedAt time.Time) error {
	data, err := json.Marshal(cachedSnapshot{FetchedAt: fetchedAt, Responses: responses})
	if err != nil {
		return fmt.Errorf("encoding snapshot cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing snapshot cache: %w", err)
	}
	return nil
}
