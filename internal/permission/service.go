package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/siteperm/internal/app/dispatch"
	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/logging"
	"github.com/bnema/siteperm/internal/prefs"
)

// Stats counts prompt outcomes for telemetry.
type Stats struct {
	Granted int
	Denied  int
	Ignored int
}

// ServiceConfig wires a Service to its collaborators. Control and FastPath
// are the two execution contexts of the subsystem; the service posts cache
// updates from control to fast-path, never the reverse.
type ServiceConfig struct {
	Prefs    *prefs.Service
	Control  *dispatch.Queue
	FastPath *dispatch.Queue
	Prompter port.PromptPresenter
	Delivery port.DecisionDelivery
	Labels   port.OriginLabeler // optional; host fallback when nil or unknown
}

// Service coordinates the permission store and cache. It owns both: all
// reads and writes go through it, every store mutation is propagated into
// the cache asynchronously on the fast-path context, and the request/decision
// flow (prompting the user, delivering the result) runs here.
type Service struct {
	store    *Store
	cache    *Cache
	control  *dispatch.Queue
	fastPath *dispatch.Queue
	prompter port.PromptPresenter
	delivery port.DecisionDelivery
	labels   port.OriginLabeler

	// baseCtx carries the logger for work not tied to a caller, like
	// observer-driven propagation.
	baseCtx context.Context

	// Control-context state. The control queue is a serial executor, so no
	// locking is needed for these.
	suppressPropagation bool
	stats               Stats
	unsubscribe         []func()
}

// NewService builds the coordinator, eagerly populates the cache from the
// store (normal sessions) or leaves it empty (ephemeral sessions), and starts
// observing the three watched preferences. Must run on the control context.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	if err := cfg.Control.Require(ctx); err != nil {
		return nil, err
	}
	if cfg.Prompter == nil || cfg.Delivery == nil {
		return nil, errors.New("permission: prompter and delivery are required")
	}

	store, err := NewStore(ctx, cfg.Prefs)
	if err != nil {
		return nil, fmt.Errorf("permission: init store: %w", err)
	}

	s := &Service{
		store:    store,
		cache:    NewCache(),
		control:  cfg.Control,
		fastPath: cfg.FastPath,
		prompter: cfg.Prompter,
		delivery: cfg.Delivery,
		labels:   cfg.Labels,
		baseCtx:  logging.WithComponent(ctx, "permission"),
	}

	// An ephemeral session never reads persisted state: its cache starts
	// empty and answers the fallback until in-session decisions land.
	var snap entity.PermissionSnapshot
	if !store.Ephemeral() {
		snap = store.Snapshot(ctx)
	}
	cache := s.cache
	if err := s.fastPath.Post(func(context.Context) {
		cache.SetDefault(snap.Default)
		cache.SetAllowed(snap.Allowed)
		cache.SetBlocked(snap.Blocked)
		cache.SetReady()
	}); err != nil {
		return nil, fmt.Errorf("permission: populate cache: %w", err)
	}

	s.startObserving()
	return s, nil
}

// startObserving subscribes to the three watched preferences. Ephemeral
// sessions are observed too: their preference values live in memory only,
// but SetDefault, Reset and ResetAll still rely on the observer to reach
// the cache.
func (s *Service) startObserving() {
	for _, key := range []string{PrefDefaultDecision, PrefAllowedOrigins, PrefBlockedOrigins} {
		s.unsubscribe = append(s.unsubscribe, s.store.prefs.AddObserver(key, s.onPrefChanged))
	}
}

// onPrefChanged recomputes the entire affected value from the store and
// forwards it to the cache on the fast-path context. Whole values, never
// deltas: each propagated update is a self-consistent snapshot, so late or
// reordered deliveries can only replace state with equally consistent state.
// Runs synchronously on the control context, inside the mutating call.
func (s *Service) onPrefChanged(key string) {
	if s.suppressPropagation {
		return
	}

	cache := s.cache
	var task dispatch.Task
	switch key {
	case PrefAllowedOrigins:
		allowed := s.store.AllowedOrigins(s.baseCtx)
		task = func(context.Context) { cache.SetAllowed(allowed) }
	case PrefBlockedOrigins:
		blocked := s.store.BlockedOrigins(s.baseCtx)
		task = func(context.Context) { cache.SetBlocked(blocked) }
	case PrefDefaultDecision:
		def := s.store.rawDefault()
		task = func(context.Context) { cache.SetDefault(def) }
	default:
		return
	}

	if err := s.fastPath.Post(task); err != nil {
		logging.FromContext(s.baseCtx).Error().Err(err).Str("pref", key).Msg("failed to propagate pref change")
	}
}

// Query returns the cached decision for origin. This is the fast-path read:
// it never touches durable storage and never blocks beyond the cache lock.
func (s *Service) Query(origin entity.Origin) entity.Decision {
	return s.cache.Query(origin)
}

// CacheReady reports whether the fast-path cache finished initial population.
func (s *Service) CacheReady() bool {
	return s.cache.IsReady()
}

// GetDecision is the strongly consistent control-context read, used when
// deciding whether to prompt.
func (s *Service) GetDecision(ctx context.Context, origin entity.Origin) (entity.Decision, error) {
	if err := s.control.Require(ctx); err != nil {
		return entity.DecisionDefault, err
	}
	return s.store.GetDecision(ctx, origin), nil
}

// DefaultDecision returns the resolved configured default.
func (s *Service) DefaultDecision(ctx context.Context) (entity.Decision, error) {
	if err := s.control.Require(ctx); err != nil {
		return entity.DecisionDefault, err
	}
	return s.store.DefaultDecision(), nil
}

// SetDefault persists a new default decision. Propagation into the cache
// happens through the generic preference observer.
func (s *Service) SetDefault(ctx context.Context, d entity.Decision) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}
	s.store.SetDefault(ctx, d)
	return nil
}

// Grant moves origin onto the allow list and propagates the change.
//
// This is the single-origin mutation path: the generic observer would
// recompute and ship both whole lists, so it is suppressed for the duration
// of the store call and the service posts one explicit incremental cache
// update instead. Exactly one propagation per logical mutation.
func (s *Service) Grant(ctx context.Context, origin entity.Origin) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}

	s.suppressPropagation = true
	s.store.Grant(ctx, origin)
	s.suppressPropagation = false

	cache := s.cache
	if err := s.fastPath.Post(func(context.Context) { cache.AddAllowed(origin) }); err != nil {
		return fmt.Errorf("permission: propagate grant: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("origin", origin.String()).Msg("origin granted")
	return nil
}

// Deny moves origin onto the block list and propagates the change. Same
// suppression discipline as Grant.
func (s *Service) Deny(ctx context.Context, origin entity.Origin) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}

	s.suppressPropagation = true
	s.store.Deny(ctx, origin)
	s.suppressPropagation = false

	cache := s.cache
	if err := s.fastPath.Post(func(context.Context) { cache.AddBlocked(origin) }); err != nil {
		return fmt.Errorf("permission: propagate deny: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("origin", origin.String()).Msg("origin blocked")
	return nil
}

// Reset removes origin from the list it is asserted to be in. Infrequent, so
// the generic observer handles cache propagation.
func (s *Service) Reset(ctx context.Context, origin entity.Origin, wasAllowed bool) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}
	return s.store.Reset(ctx, origin, wasAllowed)
}

// ResetAll clears both origin lists. Propagation through the observer.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}
	s.store.ResetAll(ctx)
	return nil
}

// AllowedOrigins lists the currently allowed origins.
func (s *Service) AllowedOrigins(ctx context.Context) ([]entity.Origin, error) {
	if err := s.control.Require(ctx); err != nil {
		return nil, err
	}
	return s.store.AllowedOrigins(ctx), nil
}

// BlockedOrigins lists the currently blocked origins.
func (s *Service) BlockedOrigins(ctx context.Context) ([]entity.Origin, error) {
	if err := s.control.Require(ctx); err != nil {
		return nil, err
	}
	return s.store.BlockedOrigins(ctx), nil
}

// RequestPermission resolves a permission request from a renderer. When the
// store already has an answer it is delivered immediately; otherwise the user
// is prompted and the request stays pending until resolved or the surface is
// destroyed. Concurrent requests for the same origin each get their own
// prompt; deduplication is deliberately not attempted.
func (s *Service) RequestPermission(
	ctx context.Context,
	origin entity.Origin,
	requester entity.Requester,
	surface *Surface,
) error {
	if err := s.control.Require(ctx); err != nil {
		return err
	}
	if surface == nil {
		return errors.New("permission: request without a surface")
	}

	log := logging.FromContext(ctx).With().
		Str("component", "permission").
		Str("origin", origin.String()).
		Int("process_id", requester.ProcessID).
		Int("route_id", requester.RouteID).
		Logger()

	decision := s.store.GetDecision(ctx, origin)
	if decision != entity.DecisionAsk {
		log.Debug().Str("decision", decision.String()).Msg("request answered from store")
		s.deliver(ctx, requester, decision)
		return nil
	}

	req := &pendingRequest{origin: origin, requester: requester, surface: surface}
	if !surface.onTeardown(func() {
		// Hop back onto control; teardown may come from anywhere.
		if err := s.control.Post(func(cctx context.Context) { s.abandon(cctx, req) }); err != nil {
			logging.FromContext(s.baseCtx).Error().Err(err).Msg("failed to abandon pending request")
		}
	}) {
		// Surface already gone: unblock the requester with a neutral answer.
		log.Debug().Msg("surface destroyed before prompt, delivering neutral completion")
		s.deliver(ctx, requester, entity.DecisionAsk)
		return nil
	}

	log.Debug().Msg("prompting user")
	s.prompter.ShowPrompt(ctx, origin, s.displayNameForOrigin(ctx, origin), requester,
		func(outcome port.PromptOutcome) {
			if err := s.control.Post(func(cctx context.Context) { s.resolve(cctx, req, outcome) }); err != nil {
				logging.FromContext(s.baseCtx).Error().Err(err).Msg("failed to resolve prompt outcome")
			}
		})
	return nil
}

// resolve applies the user's prompt response: record the decision (which
// propagates into the cache), count the outcome, and deliver the completion.
// Runs on the control context. A request abandoned before the response
// arrives is already completed and the late response is dropped.
func (s *Service) resolve(ctx context.Context, req *pendingRequest, outcome port.PromptOutcome) {
	if req.completed {
		return
	}
	req.completed = true

	log := logging.FromContext(ctx)
	switch outcome {
	case port.PromptAllow:
		s.stats.Granted++
		if err := s.Grant(ctx, req.origin); err != nil {
			log.Error().Err(err).Msg("failed to grant after prompt")
		}
	case port.PromptBlock:
		s.stats.Denied++
		if err := s.Deny(ctx, req.origin); err != nil {
			log.Error().Err(err).Msg("failed to deny after prompt")
		}
	case port.PromptDismissed:
		// No action taken; the store stays as it was.
		s.stats.Ignored++
	}

	// Deliver whatever now applies, so dismissed prompts still unblock the
	// requester.
	s.deliver(ctx, req.requester, s.store.GetDecision(ctx, req.origin))
}

// abandon completes a pending request whose surface was destroyed: no store
// change, a neutral completion, counted as ignored.
func (s *Service) abandon(ctx context.Context, req *pendingRequest) {
	if req.completed {
		return
	}
	req.completed = true
	s.stats.Ignored++

	logging.FromContext(ctx).Debug().
		Str("origin", req.origin.String()).
		Msg("pending permission request abandoned")
	s.deliver(ctx, req.requester, entity.DecisionAsk)
}

// deliver posts the one-way completion message onto the fast-path context.
func (s *Service) deliver(ctx context.Context, requester entity.Requester, decision entity.Decision) {
	delivery := s.delivery
	if err := s.fastPath.Post(func(fctx context.Context) {
		delivery.DeliverCompletion(fctx, requester, decision)
	}); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to deliver completion")
	}
}

// displayNameForOrigin returns the label-lookup result when one exists
// (extension origins), the origin's host otherwise.
func (s *Service) displayNameForOrigin(ctx context.Context, origin entity.Origin) string {
	if s.labels != nil {
		if label, ok := s.labels.LabelForOrigin(ctx, origin); ok {
			return label
		}
	}
	return origin.Host()
}

// PromptStats returns the prompt outcome counters. Control context only.
func (s *Service) PromptStats(ctx context.Context) (Stats, error) {
	if err := s.control.Require(ctx); err != nil {
		return Stats{}, err
	}
	return s.stats, nil
}

// Close stops observing the store. The queues are owned by the caller and
// shut down separately.
func (s *Service) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}
