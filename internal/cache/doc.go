// Package cache provides a generic thread-safe LRU cache.
//
// The shader backends key it by a hash of the preprocessed source, so
// the reload coordinator's retry-on-every-poll behavior for a broken
// shader costs one map lookup instead of a full recompile:
//
//	c := cache.New[[32]byte, compileResult](64)
//	c.Set(key, result)
//	result, ok := c.Get(key)
//
// Eviction uses a soft limit: inserts beyond capacity drop the least
// recently used quarter of the entries in one batch.
package cache
