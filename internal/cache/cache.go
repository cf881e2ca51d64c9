package cache

import (
	"sync"
	"time"
)

// Cache is a process-local TTL cache. The API keeps the subject catalog in
// one so repeated listings skip the database; entries expire lazily on read.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	value     any
	expiresAt time.Time
}

const minTTL = 5 * time.Second

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = minTTL
	}

	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the live value stored under key. An expired entry is removed
// and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}

	return e.value, true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear drops every entry; tests use it to force a cold start.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
