package cache

import (
	"context"
	"sync"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.Mutex
	clock   sharedDomain.Clock
	ttl     time.Duration
	entries map[uuid.UUID]map[uuid.UUID]entry
}

// NewMemoryCache creates an empty cache. A zero ttl selects DefaultTTL.
func NewMemoryCache(clock sharedDomain.Clock, ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[uuid.UUID]map[uuid.UUID]entry),
	}
}

// Get returns the user's entries still inside the TTL and drops the user
// once none are left.
func (c *MemoryCache) Get(_ context.Context, userID uuid.UUID) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byTask := c.entries[userID]
	if len(byTask) == 0 {
		return nil, nil
	}
	entries := make([]entry, 0, len(byTask))
	for _, e := range byTask {
		entries = append(entries, e)
	}
	cutoff := c.clock.Now().Add(-c.ttl)
	snapshot := fresh(entries, cutoff)
	if snapshot == nil {
		delete(c.entries, userID)
	}
	return snapshot, nil
}

// Put merges snapshot into the user's entries.
func (c *MemoryCache) Put(_ context.Context, userID uuid.UUID, snapshot Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = merge(c.entries[userID], snapshot)
	return nil
}

// Invalidate forgets every entry of the user.
func (c *MemoryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
	return nil
}
