// Package cache holds recently resolved metadata for a short TTL and
// coalesces concurrent lookups for the same video ID, so a burst of
// requests does not fan out into duplicate provider calls.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tubegrab/tubegrab/internal/resolver"
)

type entry struct {
	meta    *resolver.Metadata
	expires time.Time
}

// Cache is a TTL map keyed by video ID. A TTL of zero or less disables
// caching entirely and Do becomes a plain passthrough, matching the
// service's original no-cache behavior.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Do returns the cached metadata for key, or runs fn to resolve it. While
// one fn is in flight, concurrent callers for the same key wait for its
// result instead of resolving again. Errors are never cached.
func (c *Cache) Do(key string, fn func() (*resolver.Metadata, error)) (*resolver.Metadata, error) {
	if c.ttl <= 0 {
		return fn()
	}

	if m := c.get(key); m != nil {
		return m, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A winner may have populated the entry while we queued.
		if m := c.get(key); m != nil {
			return m, nil
		}
		m, err := fn()
		if err != nil {
			return nil, err
		}
		c.set(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*resolver.Metadata), nil
}

func (c *Cache) get(key string) *resolver.Metadata {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		return nil
	}
	return e.meta
}

func (c *Cache) set(key string, m *resolver.Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Opportunistic sweep keeps the map from growing without bound.
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{meta: m, expires: now.Add(c.ttl)}
}
