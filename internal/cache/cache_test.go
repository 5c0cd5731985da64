package cache

import (
	"context"
	"testing"
	"time"

	"craftpin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()

	c, err := New(&config.CacheConfig{Provider: "memory", CleanupInterval: 10 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "k", payload{Name: "sewing", Count: 5}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "sewing", Count: 5}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	var got string
	hit, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 20*time.Millisecond))

	var got string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, hit)

	assert.Eventually(t, func() bool {
		hit, err := c.Get(ctx, "k", &got)
		return err == nil && !hit
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var got int
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "old", time.Minute))
	require.NoError(t, c.Set(ctx, "k", "new", time.Minute))

	var got string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "new", got)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(&config.CacheConfig{Provider: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewDefaultsToMemory(t *testing.T) {
	c, err := New(&config.CacheConfig{}, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.Health(context.Background()))
}
