package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("groq", "llama-3.1-8b-instant", "prompt")
	b := Key("groq", "llama-3.1-8b-instant", "prompt")
	c := Key("groq", "llama-3.1-8b-instant", "other prompt")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, keyPrefix))
	assert.Len(t, strings.TrimPrefix(a, keyPrefix), 64)
}

func TestKeySeparatesParts(t *testing.T) {
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestNewRedisCacheDisabled(t *testing.T) {
	c, err := NewRedisCache(context.Background(), "", time.Hour)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *RedisCache
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Set(ctx, "k", "v"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-redis-url", time.Hour)
	assert.Error(t, err)
}
