package common

import (
	"fmt"
	"sync"
	"time"
)

// cacheEntry pairs a stored value with the time it was written. Entries are
// replaced wholesale on Set, never mutated in place.
type cacheEntry[V any] struct {
	value     V
	timestamp time.Time
}

// Cache is a named, memory-resident TTL cache. One instance is created per
// logical resource type (postal boundaries, green spaces, walking distance,
// property prices), each with its own TTL. Expiry is lazy: an expired entry
// is removed on the Get that observes it; there is no background sweep.
//
// A stored nil pointer is a present value: callers distinguish "absent"
// (second return false) from "present, value nil" (second return true).
// The cache itself never fails at runtime; absence is the only miss signal.
type Cache[V any] struct {
	name    string
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

// NewCache constructs an empty cache. The name is used for diagnostics and
// must be non-empty; the ttl must be strictly positive. Both are validated
// here rather than deferred to first use.
func NewCache[V any](name string, ttl time.Duration) (*Cache[V], error) {
	if name == "" {
		return nil, fmt.Errorf("cache name must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache %q: ttl must be positive, got %s", name, ttl)
	}
	return &Cache[V]{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}, nil
}

// SetNowForTest replaces the clock used for entry ages.
func (c *Cache[V]) SetNowForTest(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Name returns the diagnostic name given at construction.
func (c *Cache[V]) Name() string { return c.name }

// Get returns the value stored under key, or (zero, false) if the key is
// missing or its entry has outlived the TTL. An expired entry is deleted as
// a side effect of the Get that observes it.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(entry.timestamp) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key, overwriting any existing entry and resetting
// its age to zero regardless of whether the previous entry had expired.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[V]{value: value, timestamp: c.now()}
}

// Delete removes one entry and reports whether it existed.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear empties the cache. Used by scheduled maintenance tasks; idempotent.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[V])
}

// Len reports the current entry count, including entries that have expired
// but have not yet been swept by a Get.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
