package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vikesh2608/EagleReach/providers"
)

const redisKeyPrefix = "officials:"

// RedisConfig holds all configuration for the Redis-backed cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache is a Redis-backed officials cache shared across instances
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates and connects a new RedisCache
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{client: rdb, ttl: cfg.TTL}, nil
}

// Close gracefully closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached officials for an address, if present and fresh
func (c *RedisCache) Get(ctx context.Context, address string) ([]providers.Official, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+address).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Redis cache read failed", "error", err)
		}
		return nil, false
	}

	var officials []providers.Official
	if err := json.Unmarshal(raw, &officials); err != nil {
		slog.Warn("Discarding malformed cache entry", "address", address, "error", err)
		return nil, false
	}
	return officials, true
}

// Set stores the officials for an address with the configured TTL
func (c *RedisCache) Set(ctx context.Context, address string, officials []providers.Official) {
	raw, err := json.Marshal(officials)
	if err != nil {
		slog.Error("Failed to marshal officials for cache", "error", err)
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+address, raw, c.ttl).Err(); err != nil {
		slog.Warn("Redis cache write failed", "error", err)
	}
}
