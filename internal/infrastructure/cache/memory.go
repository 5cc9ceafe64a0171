package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ecolens/backend/internal/domain"
)

// cacheItem pairs a stored result with its expiration.
type cacheItem struct {
	result     *domain.UnifiedAnalysisResult
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory result cache with TTL support.
// Results are value objects, never mutated after construction, so entries
// can be shared with callers without copying.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory result cache and starts its
// periodic expiry sweep.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]cacheItem),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves a result from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.UnifiedAnalysisResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}
	return item.result, nil
}

// Set stores a result in the cache with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, result *domain.UnifiedAnalysisResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		result:     result,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a result from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of entries (for debugging/monitoring).
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

// cleanupExpired removes expired entries every 10 minutes.
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
