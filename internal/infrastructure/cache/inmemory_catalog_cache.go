package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryCatalogCache implements CatalogCache with a process-local map.
// Used in development and tests, and as the fallback when Redis is disabled.
type InMemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryCatalogCache creates a new in-memory catalog cache
func NewInMemoryCatalogCache(ttl time.Duration) *InMemoryCatalogCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &InMemoryCatalogCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// GetList retrieves a cached listing payload
func (c *InMemoryCatalogCache) GetList(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.payload, true
}

// SetList stores a listing payload
func (c *InMemoryCatalogCache) SetList(_ context.Context, key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops all cached listings
func (c *InMemoryCatalogCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

// Close is a no-op for the in-memory cache
func (c *InMemoryCatalogCache) Close() error {
	return nil
}

// Ensure InMemoryCatalogCache implements CatalogCache
var _ CatalogCache = (*InMemoryCatalogCache)(nil)
