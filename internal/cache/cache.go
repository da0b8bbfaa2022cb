// Package cache provides a small in-process TTL cache. It exists so that
// frequently resolved lookups (usernames on ledger writes) have an explicit,
// constructor-injected cache object with defined invalidation instead of an
// implicit package-level map.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache is a mutex-guarded map with per-entry expiry.
type TTLCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[T]
}

// New creates a TTLCache whose entries expire after ttl. A zero or negative
// ttl means entries never expire and must be removed with Delete.
func New[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Get retrieves a value from the cache. Expired entries are treated as
// missing but are only reclaimed by Set, Delete, or CleanExpired.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value in the cache.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[key] = entry[T]{value: value, expiresAt: expiresAt}
}

// Delete removes a key from the cache.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Size returns the current number of items in the cache, expired included.
func (c *TTLCache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CleanExpired removes expired entries and reports how many were removed.
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
