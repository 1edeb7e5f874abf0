package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCatalogCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		c := NewInMemoryCatalogCache(time.Minute)
		_, ok := c.GetList(ctx, "page=1")
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemoryCatalogCache(time.Minute)
		c.SetList(ctx, "page=1", []byte(`{"items":[]}`))

		payload, ok := c.GetList(ctx, "page=1")
		assert.True(t, ok)
		assert.Equal(t, []byte(`{"items":[]}`), payload)
	})

	t.Run("invalidate drops everything", func(t *testing.T) {
		c := NewInMemoryCatalogCache(time.Minute)
		c.SetList(ctx, "page=1", []byte("a"))
		c.SetList(ctx, "page=2", []byte("b"))

		c.Invalidate(ctx)

		_, ok := c.GetList(ctx, "page=1")
		assert.False(t, ok)
		_, ok = c.GetList(ctx, "page=2")
		assert.False(t, ok)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		c := NewInMemoryCatalogCache(10 * time.Millisecond)
		c.SetList(ctx, "page=1", []byte("a"))

		time.Sleep(20 * time.Millisecond)

		_, ok := c.GetList(ctx, "page=1")
		assert.False(t, ok)
	})
}
