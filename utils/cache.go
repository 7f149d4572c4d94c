package utils

import (
	"sync"
	"time"
)

// TTLCache holds a single cached value together with the time it was
// fetched. Staleness is a pure function of the fetch time, the TTL and the
// clock passed in, so it is testable without sleeping.
type TTLCache[T any] struct {
	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	valid     bool
}

// Get returns the cached value and whether a value has been set at all.
func (c *TTLCache[T]) Get() (T, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.fetchedAt, c.valid
}

// Set stores a value with its fetch time.
func (c *TTLCache[T]) Set(value T, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.fetchedAt = now
	c.valid = true
}

// Invalidate discards the cached value.
func (c *TTLCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.valid = false
}

// IsStale reports whether the cache needs a refresh at the given instant.
// An empty cache is always stale.
func (c *TTLCache[T]) IsStale(ttl time.Duration, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return true
	}
	return now.Sub(c.fetchedAt) >= ttl
}
