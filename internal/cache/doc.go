// Package cache provides a bounded, thread-safe LRU cache.
//
//	c := cache.New[string, int](16)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Lookups renew an entry. Inserting past the limit evicts the least
// recently used entry.
package cache
