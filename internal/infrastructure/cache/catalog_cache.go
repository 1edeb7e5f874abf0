package cache

import (
	"context"
	"time"
)

// CatalogCache caches serialized catalog listing payloads keyed by the
// normalized query signature. Invalidate drops every cached listing, it is
// called on any product mutation.
type CatalogCache interface {
	GetList(ctx context.Context, key string) ([]byte, bool)
	SetList(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
	Close() error
}

// DefaultListTTL bounds staleness when an invalidation is missed
const DefaultListTTL = 30 * time.Second
