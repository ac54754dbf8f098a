package permission

import (
	"sync"

	"github.com/bnema/siteperm/internal/domain/entity"
)

// Cache is the fast-path mirror of the permission store: an in-memory
// snapshot of {default decision, allow list, block list} queryable without
// touching durable storage.
//
// Reads take a shared lock and never block beyond it; a reader sees either
// the pre- or post-write state of any concurrent update, never a partial one.
// Writes arrive as asynchronous hand-offs from the control context and either
// replace a whole list or apply a single-origin move; both are idempotent, so
// reapplying an already-applied snapshot leaves the cache unchanged.
type Cache struct {
	mu      sync.RWMutex
	def     entity.Decision
	allowed map[entity.Origin]struct{}
	blocked map[entity.Origin]struct{}
	ready   bool
}

// NewCache returns an empty, not-yet-ready cache.
func NewCache() *Cache {
	return &Cache{
		allowed: make(map[entity.Origin]struct{}),
		blocked: make(map[entity.Origin]struct{}),
	}
}

// Query returns the decision for origin. Before the initial population
// completes it fails safe: no information means the fallback (ask), never a
// blocking wait, since the fast path must not stall.
func (c *Cache) Query(origin entity.Origin) entity.Decision {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return entity.FallbackDecision
	}
	if _, ok := c.allowed[origin]; ok {
		return entity.DecisionAllow
	}
	if _, ok := c.blocked[origin]; ok {
		return entity.DecisionBlock
	}
	return c.def.Resolve()
}

// IsReady reports whether the initial population has completed.
func (c *Cache) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// SetReady marks the initial population complete.
func (c *Cache) SetReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = true
}

// SetDefault replaces the cached default decision. The sentinel is stored
// as-is and resolved on read, like the store does.
func (c *Cache) SetDefault(d entity.Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.def = d
}

// SetAllowed replaces the whole allow set with a full snapshot.
func (c *Cache) SetAllowed(origins []entity.Origin) {
	next := make(map[entity.Origin]struct{}, len(origins))
	for _, o := range origins {
		next[o] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.allowed = next
}

// SetBlocked replaces the whole block set with a full snapshot.
func (c *Cache) SetBlocked(origins []entity.Origin) {
	next := make(map[entity.Origin]struct{}, len(origins))
	for _, o := range origins {
		next[o] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked = next
}

// AddAllowed applies a single-origin grant: insert into allowed, remove from
// blocked, atomically with respect to readers.
func (c *Cache) AddAllowed(origin entity.Origin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allowed[origin] = struct{}{}
	delete(c.blocked, origin)
}

// AddBlocked applies a single-origin denial: insert into blocked, remove from
// allowed, atomically with respect to readers.
func (c *Cache) AddBlocked(origin entity.Origin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked[origin] = struct{}{}
	delete(c.allowed, origin)
}

// snapshot returns a copy of the cache state, for tests and introspection.
func (c *Cache) snapshot() entity.PermissionSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := entity.PermissionSnapshot{Default: c.def}
	for o := range c.allowed {
		snap.Allowed = append(snap.Allowed, o)
	}
	for o := range c.blocked {
		snap.Blocked = append(snap.Blocked, o)
	}
	return snap
}
