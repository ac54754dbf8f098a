package permission

import (
	"sync"

	"github.com/bnema/siteperm/internal/domain/entity"
)

// Surface is the owning UI surface (tab) of one or more permission prompts.
// Destroying the surface abandons every pending request registered against
// it: no decision is recorded, but each requester still receives exactly one
// neutral completion so it is never left waiting.
type Surface struct {
	mu        sync.Mutex
	destroyed bool
	teardown  []func()
}

// NewSurface creates a live surface.
func NewSurface() *Surface {
	return &Surface{}
}

// onTeardown registers fn to run when the surface is destroyed. Returns false
// without registering when the surface is already gone.
func (s *Surface) onTeardown(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return false
	}
	s.teardown = append(s.teardown, fn)
	return true
}

// Destroy tears the surface down, firing registered callbacks once.
// Safe to call more than once.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	callbacks := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Destroyed reports whether the surface has been torn down.
func (s *Surface) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// pendingRequest tracks one in-flight permission prompt. All fields are
// touched on the control context only.
type pendingRequest struct {
	origin    entity.Origin
	requester entity.Requester
	surface   *Surface
	completed bool
}
