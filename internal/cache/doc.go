// Package cache provides the generic keyed cache used for brush stamps.
//
//	c := cache.New[stampKey, *paint.Mask](1)
//	tip := c.GetOrCreate(key, func() *paint.Mask { return generate(key) })
//
// Keys are compared structurally, so a cache key must carry every input
// that affects the cached value. A limit of 1 turns the cache into a
// single slot that is invalidated whenever the key changes.
//
// # Thread Safety
//
// Cache is meant for the single-threaded painting loop and is not safe
// for concurrent use.
package cache
