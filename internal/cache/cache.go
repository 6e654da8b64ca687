package cache

import "sync"

// Cache is a generic LRU cache with a soft size limit. It memoizes
// expensive work keyed by cheap fingerprints; the shader backends use it
// to skip recompiling source that has not changed between polls.
//
// Cache is safe for concurrent use and must not be copied after
// creation (it holds a mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	records   map[K]*record[V]
	softLimit int
	tick      int64 // monotonic access counter, orders evictions
}

type record[V any] struct {
	value V
	atime int64
}

// New creates a cache holding at most softLimit entries before eviction
// kicks in. A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		records:   make(map[K]*record[V]),
		softLimit: softLimit,
	}
}

// Get returns the cached value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.records[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	r.atime = c.tick
	return r.value, true
}

// Set stores value under key, evicting the least recently used entries
// when the soft limit is exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.records[key] = &record[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.records) > c.softLimit {
		c.evictOldest()
	}
}

// GetOrCreate returns the cached value for key, calling create to
// produce and store it on a miss. create runs under the cache lock, so
// concurrent callers never compute the same key twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.records[key]; ok {
		c.tick++
		r.atime = c.tick
		return r.value
	}

	value := create()
	c.tick++
	c.records[key] = &record[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.records) > c.softLimit {
		c.evictOldest()
	}
	return value
}

// Delete removes key, reporting whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[key]; ok {
		delete(c.records, key)
		return true
	}
	return false
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make(map[K]*record[V])
	c.tick = 0
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}

// Capacity returns the soft limit.
func (c *Cache[K, V]) Capacity() int { return c.softLimit }

// evictOldest drops least recently used entries down to 75% of the soft
// limit, so a hot cache is not re-evicted on every insert.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	toEvict := len(c.records) - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.records))
	for key, r := range c.records {
		all = append(all, aged{key: key, atime: r.atime})
	}

	// Selection of the oldest few; batches are small enough that a
	// partial sort is not worth it.
	for i := 0; i < toEvict && i < len(all); i++ {
		minIdx := i
		for j := i + 1; j < len(all); j++ {
			if all[j].atime < all[minIdx].atime {
				minIdx = j
			}
		}
		if minIdx != i {
			all[i], all[minIdx] = all[minIdx], all[i]
		}
		delete(c.records, all[i].key)
	}
}
