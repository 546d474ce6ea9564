package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache stores serialized reports in process memory. Entries
// expire after their TTL; a background janitor sweeps expired entries
// at the cleanup interval.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. defaultTTL applies when Set is
// called with a zero ttl.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the cached bytes for key. Entries written through Set are
// always []byte; anything else is treated as a miss.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

// Set stores value under key for ttl; zero ttl means the default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}
