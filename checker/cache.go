package checker

import (
	"sync"
	"time"

	"github.com/pthm/relcore/model"
)

// Cache is consulted by Checker.Check before touching the store.
type Cache interface {
	Get(subject model.Subject, relation model.Relation, object model.Object) (allowed bool, ok bool)
	Set(subject model.Subject, relation model.Relation, object model.Object, allowed bool)
}

type cacheKey struct {
	subject  model.Subject
	relation model.Relation
	object   model.Object
}

type cacheEntry struct {
	allowed   bool
	expiresAt time.Time
}

// MemoryCache is a Cache backed by a mutex-guarded map with per-entry TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

var _ Cache = (*MemoryCache)(nil)

// CacheOption configures a MemoryCache at construction time.
type CacheOption func(*MemoryCache)

// WithTTL sets how long an entry remains valid after being set. The zero
// value means entries never expire.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *MemoryCache) { c.ttl = ttl }
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache(opts ...CacheOption) *MemoryCache {
	c := &MemoryCache{entries: make(map[cacheKey]cacheEntry)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(subject model.Subject, relation model.Relation, object model.Object) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{subject, relation, object}]
	if !ok {
		return false, false
	}
	if c.ttl > 0 && time.Now().After(entry.expiresAt) {
		return false, false
	}
	return entry.allowed, true
}

func (c *MemoryCache) Set(subject model.Subject, relation model.Relation, object model.Object, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[cacheKey{subject, relation, object}] = cacheEntry{allowed: allowed, expiresAt: expiresAt}
}

// Size returns the number of entries currently cached, expired or not.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
