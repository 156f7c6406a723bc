// Package cache provides the officials lookup cache. Lookups are cached per
// raw address string for a configurable TTL, backed by Redis when configured
// and by an in-process map otherwise.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Vikesh2608/EagleReach/providers"
)

// OfficialsCache caches resolved officials keyed by the raw address string
type OfficialsCache interface {
	// Get returns the cached officials for an address, if present and fresh
	Get(ctx context.Context, address string) ([]providers.Official, bool)

	// Set stores the officials for an address
	Set(ctx context.Context, address string, officials []providers.Official)
}

type memoryEntry struct {
	storedAt  time.Time
	officials []providers.Official
}

// MemoryCache is an in-process TTL cache for officials lookups
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry

	// now is stubbed in tests for deterministic expiry
	now func() time.Time
}

// NewMemoryCache creates an in-process officials cache with the given TTL
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached officials for an address, if present and fresh
func (c *MemoryCache) Get(_ context.Context, address string) ([]providers.Official, bool) {
	c.mu.RLock()
	entry, ok := c.entries[address]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, address)
		c.mu.Unlock()
		return nil, false
	}
	return entry.officials, true
}

// Set stores the officials for an address
func (c *MemoryCache) Set(_ context.Context, address string, officials []providers.Official) {
	c.mu.Lock()
	c.entries[address] = memoryEntry{storedAt: c.now(), officials: officials}
	c.mu.Unlock()
}
