// Package cache is the client-side query layer: a keyed in-memory cache of
// server-derived data with per-read staleness windows, request deduplication
// and optimistic mutations. The UI reads only from here.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache holds the reactive in-memory copies of server data.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	logger  *zap.Logger
	clock   func() time.Time
}

// New builds an empty cache.
func New(logger *zap.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		logger:  logger,
		clock:   time.Now,
	}
}

// Set stores a value under key, marking it freshly fetched.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.clock()}
	c.mu.Unlock()
}

// Invalidate drops entries so the next read refetches.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

func (c *Cache) lookup(key string) (entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	return e, ok
}

// get returns the cached value when present. A fresh hit returns as-is; a
// stale hit still returns the cached value but triggers a background
// refetch. A miss blocks on the fetch; concurrent misses for the same key
// collapse to a single in-flight request.
func (c *Cache) get(ctx context.Context, key string, maxAge time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	if e, ok := c.lookup(key); ok {
		if c.clock().Sub(e.fetchedAt) <= maxAge {
			return e.value, nil
		}
		go c.refresh(key, fetch)
		return e.value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we queued.
		if e, ok := c.lookup(key); ok && c.clock().Sub(e.fetchedAt) <= maxAge {
			return e.value, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	return value, err
}

// refresh refetches a stale entry in the background. Failures fall back to
// the previously cached data and are only logged.
func (c *Cache) refresh(key string, fetch func(context.Context) (any, error)) {
	_, _, _ = c.group.Do(key, func() (any, error) {
		value, err := fetch(context.Background())
		if err != nil {
			c.logger.Debug("background refetch failed, keeping cached data",
				zap.String("key", key), zap.Error(err))
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
}

// Get is the typed read: cached value within maxAge, stale-while-refetch
// beyond it, blocking fetch on a miss.
func Get[T any](ctx context.Context, c *Cache, key string, maxAge time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := c.get(ctx, key, maxAge, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q holds %T", key, value)
	}
	return typed, nil
}

// Lookup returns the cached value for key without fetching.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T
	e, ok := c.lookup(key)
	if !ok {
		return zero, false
	}
	typed, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
