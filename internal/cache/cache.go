package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"craftpin/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache defines the caching interface
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}

// New creates a cache from configuration, falling back to the in-memory
// provider when no redis URL is configured.
func New(cfg *config.CacheConfig, logger *zap.Logger) (Cache, error) {
	switch cfg.Provider {
	case "redis":
		return newRedisCache(cfg, logger)
	case "memory", "":
		return newMemoryCache(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache provider %q", cfg.Provider)
	}
}

// ===============================
// REDIS PROVIDER
// ===============================

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func newRedisCache(cfg *config.CacheConfig, logger *zap.Logger) (*redisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Redis cache connected", zap.String("addr", opts.Addr))

	return &redisCache{client: client, logger: logger}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Treat undecodable entries as misses so callers fall back to the store.
		c.logger.Warn("Dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return false, nil
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// ===============================
// MEMORY PROVIDER
// ===============================

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  *zap.Logger
	done    chan struct{}
}

func newMemoryCache(cfg *config.CacheConfig, logger *zap.Logger) *memoryCache {
	c := &memoryCache{
		entries: make(map[string]memoryEntry),
		logger:  logger,
		done:    make(chan struct{}),
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	go c.cleanupLoop(interval)

	return c
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, nil
	}

	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Health(_ context.Context) error {
	return nil
}

func (c *memoryCache) Close() error {
	close(c.done)
	return nil
}

func (c *memoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
