package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/utils"
)

const keyPrefix = "resumeready:analysis:"

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("cache miss")

// RedisCache stores raw LLM completions keyed by a hash of the request
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisCache connects to Redis. An empty URL disables caching and returns nil.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	logger := utils.Component("cache")
	logger.WithFields(logrus.Fields{"addr": opts.Addr, "ttl": ttl}).Info("Redis analysis cache connected")

	return &RedisCache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Key builds a deterministic cache key from parts
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached value or ErrMiss
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", ErrMiss
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to write analysis cache")
		return err
	}
	return nil
}

// Ping checks Redis connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
