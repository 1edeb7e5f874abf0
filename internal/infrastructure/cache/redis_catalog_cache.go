package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisCatalogCache implements CatalogCache using Redis. Listing keys embed
// a generation counter; invalidation bumps the counter so stale entries
// simply age out via TTL instead of being scanned and deleted.
type RedisCatalogCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisCatalogCacheOption is a functional option for configuring the cache
type RedisCatalogCacheOption func(*RedisCatalogCache)

// WithListTTL sets the listing entry TTL
func WithListTTL(ttl time.Duration) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		c.logger = logger
	}
}

// NewRedisCatalogCache creates a new Redis-backed catalog cache
func NewRedisCatalogCache(cfg config.RedisConfig, opts ...RedisCatalogCacheOption) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisCatalogCache{
		client:     client,
		ownsClient: true,
		ttl:        cfg.CacheTTL,
		logger:     zap.NewNop(),
	}
	if cache.ttl == 0 {
		cache.ttl = DefaultListTTL
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

const generationKey = "catalog:list:gen"

func (c *RedisCatalogCache) listKey(ctx context.Context, key string) string {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		c.logger.Debug("Failed to read catalog cache generation", zap.Error(err))
	}
	return fmt.Sprintf("catalog:list:%d:%s", gen, key)
}

// GetList retrieves a cached listing payload
func (c *RedisCatalogCache) GetList(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.listKey(ctx, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to get catalog listing from cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// SetList stores a listing payload with the configured TTL
func (c *RedisCatalogCache) SetList(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, c.listKey(ctx, key), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache catalog listing", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops all cached listings by bumping the generation counter
func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

// Close releases the Redis client when this cache owns it
func (c *RedisCatalogCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisCatalogCache implements CatalogCache
var _ CatalogCache = (*RedisCatalogCache)(nil)
