// Package permission implements per-origin notification permission decisions:
// a durable store on the control context, a read-optimized cache consulted
// from the fast path, and the service that keeps the two in sync.
package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/logging"
	"github.com/bnema/siteperm/internal/prefs"
)

// Preference keys watched by the permission service.
const (
	PrefDefaultDecision = "notifications.default_decision"
	PrefAllowedOrigins  = "notifications.allowed_origins"
	PrefBlockedOrigins  = "notifications.blocked_origins"
)

// ErrInconsistentState is returned by Reset when the origin is not in the
// list the caller asserted it belongs to. Callers are expected to verify list
// membership first, so hitting this is a programming error, not user input.
var ErrInconsistentState = errors.New("permission: origin not in expected list")

// Store is the durable ground truth for permission decisions. All methods run
// on the control context only; the service never lets fast-path code near it.
type Store struct {
	prefs *prefs.Service
}

// NewStore wraps a preference service, registering the three watched
// preferences and loading their persisted values.
func NewStore(ctx context.Context, p *prefs.Service) (*Store, error) {
	// The sentinel is never stored; the registered default is the fallback.
	if err := p.RegisterInt(ctx, PrefDefaultDecision, int64(entity.FallbackDecision)); err != nil {
		return nil, fmt.Errorf("register default decision: %w", err)
	}
	if err := p.RegisterList(ctx, PrefAllowedOrigins); err != nil {
		return nil, fmt.Errorf("register allowed origins: %w", err)
	}
	if err := p.RegisterList(ctx, PrefBlockedOrigins); err != nil {
		return nil, fmt.Errorf("register blocked origins: %w", err)
	}
	return &Store{prefs: p}, nil
}

// Ephemeral reports whether this store belongs to a private session that
// never persists anything.
func (s *Store) Ephemeral() bool {
	return s.prefs.Ephemeral()
}

// DefaultDecision returns the configured default, resolved through the
// fallback rule (an unset or corrupt value reads as ask).
func (s *Store) DefaultDecision() entity.Decision {
	return entity.DecisionFromInt64(s.prefs.GetInt(PrefDefaultDecision)).Resolve()
}

// rawDefault returns the stored default without resolving the sentinel, for
// propagation into the cache (which resolves on read itself).
func (s *Store) rawDefault() entity.Decision {
	return entity.DecisionFromInt64(s.prefs.GetInt(PrefDefaultDecision))
}

// SetDefault persists a new default decision. The DecisionDefault sentinel is
// coerced to the fallback before storage.
func (s *Store) SetDefault(ctx context.Context, d entity.Decision) {
	if d == entity.DecisionDefault {
		d = entity.FallbackDecision
	}
	s.prefs.SetInt(ctx, PrefDefaultDecision, int64(d))
	s.prefs.ScheduleSave()
}

// GetDecision returns the decision for origin: allow or block when listed,
// the resolved default otherwise. Strongly consistent control-context read.
func (s *Store) GetDecision(ctx context.Context, origin entity.Origin) entity.Decision {
	for _, v := range s.prefs.GetList(PrefAllowedOrigins) {
		if v == origin.String() {
			return entity.DecisionAllow
		}
	}
	for _, v := range s.prefs.GetList(PrefBlockedOrigins) {
		if v == origin.String() {
			return entity.DecisionBlock
		}
	}
	return s.DefaultDecision()
}

// Grant moves origin onto the allow list, removing it from the block list if
// present. Each list that actually changed triggers its own change
// notification, and any change schedules a durable save.
func (s *Store) Grant(ctx context.Context, origin entity.Origin) {
	removed := s.prefs.RemoveFromList(ctx, PrefBlockedOrigins, origin.String())
	added := s.prefs.AppendIfNotPresent(ctx, PrefAllowedOrigins, origin.String())
	if removed || added {
		s.prefs.ScheduleSave()
	}
}

// Deny moves origin onto the block list, removing it from the allow list if
// present.
func (s *Store) Deny(ctx context.Context, origin entity.Origin) {
	removed := s.prefs.RemoveFromList(ctx, PrefAllowedOrigins, origin.String())
	added := s.prefs.AppendIfNotPresent(ctx, PrefBlockedOrigins, origin.String())
	if removed || added {
		s.prefs.ScheduleSave()
	}
}

// Reset removes origin from the list it is asserted to be in (wasAllowed
// selects which). Returns ErrInconsistentState, leaving the store unchanged,
// when the origin is not there.
func (s *Store) Reset(ctx context.Context, origin entity.Origin, wasAllowed bool) error {
	key := PrefBlockedOrigins
	if wasAllowed {
		key = PrefAllowedOrigins
	}
	if !s.prefs.RemoveFromList(ctx, key, origin.String()) {
		logging.FromContext(ctx).Error().
			Str("origin", origin.String()).
			Bool("was_allowed", wasAllowed).
			Msg("reset for origin missing from expected list")
		return fmt.Errorf("%w: %s (allowed=%t)", ErrInconsistentState, origin, wasAllowed)
	}
	s.prefs.ScheduleSave()
	return nil
}

// ResetAll clears both lists unconditionally. Empty lists are not an error.
func (s *Store) ResetAll(ctx context.Context) {
	s.prefs.ClearList(ctx, PrefAllowedOrigins)
	s.prefs.ClearList(ctx, PrefBlockedOrigins)
	s.prefs.ScheduleSave()
}

// AllowedOrigins returns the current allow list. Malformed persisted entries
// are skipped with a warning rather than aborting the load.
func (s *Store) AllowedOrigins(ctx context.Context) []entity.Origin {
	return s.loadOrigins(ctx, PrefAllowedOrigins)
}

// BlockedOrigins returns the current block list, skipping malformed entries.
func (s *Store) BlockedOrigins(ctx context.Context) []entity.Origin {
	return s.loadOrigins(ctx, PrefBlockedOrigins)
}

func (s *Store) loadOrigins(ctx context.Context, key string) []entity.Origin {
	origins, skipped := entity.ParseOrigins(s.prefs.GetList(key))
	if len(skipped) > 0 {
		logging.FromContext(ctx).Warn().
			Str("pref", key).
			Strs("entries", skipped).
			Msg("skipping malformed persisted origins")
	}
	return origins
}

// Snapshot returns a complete copy of the current permission state.
func (s *Store) Snapshot(ctx context.Context) entity.PermissionSnapshot {
	return entity.PermissionSnapshot{
		Default: s.rawDefault(),
		Allowed: s.AllowedOrigins(ctx),
		Blocked: s.BlockedOrigins(ctx),
	}
}
