package cache

import (
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewCatalogCache creates a catalog cache based on configuration, preferring
// Redis and falling back to the in-memory cache when Redis is disabled or
// unreachable.
func NewCatalogCache(cfg config.RedisConfig, logger *zap.Logger) CatalogCache {
	if !cfg.Enabled {
		return NewInMemoryCatalogCache(cfg.CacheTTL)
	}

	redisCache, err := NewRedisCatalogCache(cfg, WithCacheLogger(logger))
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory catalog cache", zap.Error(err))
		return NewInMemoryCatalogCache(cfg.CacheTTL)
	}

	logger.Info("Using Redis catalog cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
