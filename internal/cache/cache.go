package cache

// Cache is a generic keyed cache with a soft entry limit.
// When an insertion pushes the cache over its limit, the least recently
// used entries are evicted. With a limit of 1 the cache is a single slot:
// storing under a new key drops the previous entry.
//
// Cache is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	entries map[K]*cacheEntry[V]
	limit   int
	tick    int64 // monotonic access counter

	hits   uint64
	misses uint64
}

type cacheEntry[V any] struct {
	value V
	atime int64
}

// New creates a cache holding at most limit entries.
// A limit of 0 means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	if limit < 0 {
		limit = 0
	}
	return &Cache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
		limit:   limit,
	}
}

// Get returns the value stored under key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key, evicting old entries if needed.
func (c *Cache[K, V]) Set(key K, value V) {
	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}
	c.evict()
}

// GetOrCreate returns the cached value for key, calling create on a miss
// and storing its result.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Delete removes key. It reports whether an entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear drops every entry. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	clear(c.entries)
	c.tick = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Stats returns the current cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:    len(c.entries),
		Limit:  c.limit,
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// evict removes least recently used entries until the limit holds.
func (c *Cache[K, V]) evict() {
	if c.limit == 0 {
		return
	}
	for len(c.entries) > c.limit {
		var (
			oldest K
			atime  int64 = -1
		)
		for k, e := range c.entries {
			if atime < 0 || e.atime < atime {
				oldest, atime = k, e.atime
			}
		}
		delete(c.entries, oldest)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Limit is the maximum number of entries, 0 for unlimited.
	Limit int
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups that did not.
	Misses uint64
}
