package utils

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

/*
CacheService is the injectable TTL cache used by the public catalog
search. A single instance is built at the composition root and handed
to whoever needs it; nothing else in the codebase holds cache state.
*/
type CacheService interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Clear()
}

type memoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache builds a CacheService on top of patrickmn/go-cache.
// defaultTTL applies when Set is called with ttl <= 0.
func NewMemoryCache(defaultTTL time.Duration) CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Second
	}
	return &memoryCache{
		c: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *memoryCache) Get(key string) (any, bool) {
	return m.c.Get(key)
}

func (m *memoryCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
}

func (m *memoryCache) Clear() {
	m.c.Flush()
}
