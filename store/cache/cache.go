// Package cache provides a small in-process LRU cache with per-entry TTL.
// It backs short-lived lookups such as geocoding results and one-time codes.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// Cache is an LRU cache with TTL support.
type Cache struct {
	capacity   int
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.Mutex

	entries map[string]*entry
	order   *list.List
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	element   *list.Element
}

// New creates a cache holding at most capacity entries. Entries stored
// without an explicit TTL expire after defaultTTL.
func New(capacity int, defaultTTL time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1000
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Cache{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		now:        time.Now,
		entries:    make(map[string]*entry),
		order:      list.New(),
	}
}

// SetClock overrides the cache's time source. Tests use this to step
// through expirations without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get retrieves a value. Expired entries are removed on access.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.removeEntry(e)
		return nil, false
	}
	c.order.MoveToFront(e.element)
	return e.value, true
}

// Set stores a value with the given TTL. A non-positive ttl uses the
// cache default.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = c.now().Add(ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.removeEntry(e)
	}
}

// Invalidate removes entries matching the pattern. A trailing * matches
// any suffix (e.g. "geocode:*"); otherwise the match is exact. Returns
// the number of entries removed.
func (c *Cache) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !strings.HasSuffix(pattern, "*") {
		if e, ok := c.entries[pattern]; ok {
			c.removeEntry(e)
			return 1
		}
		return 0
	}

	prefix := strings.TrimSuffix(pattern, "*")
	count := 0
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeEntry(e)
			count++
		}
	}
	return count
}

// Len reports the number of live entries, expired ones included until
// their next access.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeEntry(e *entry) {
	c.order.Remove(e.element)
	delete(c.entries, e.key)
}

func (c *Cache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeEntry(oldest.Value.(*entry))
}
