// Package prefs implements profile preference storage: integer scalars and
// ordered string lists with per-key change observers and debounced persistence.
//
// Mutations are visible to readers immediately; writing through the backing
// repository happens asynchronously after ScheduleSave. An ephemeral service
// (private session) has no repository: values live in memory only and
// ScheduleSave is a no-op.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/siteperm/internal/domain/repository"
	"github.com/bnema/siteperm/internal/logging"
)

// ErrServiceClosed is returned by mutations after Close.
var ErrServiceClosed = errors.New("prefs: service closed")

// DefaultSaveDelay is the debounce window between a scheduled save and the
// actual flush to the repository.
const DefaultSaveDelay = 500 * time.Millisecond

// Observer is invoked synchronously, on the mutating goroutine, after a
// registered preference changes. The key identifies which preference changed;
// observers re-read the current value themselves.
type Observer func(key string)

type observerEntry struct {
	id int
	fn Observer
}

// Service holds the in-memory preference values and flushes dirty keys to a
// PreferenceRepository.
type Service struct {
	mu         sync.Mutex
	ints       map[string]int64
	lists      map[string][]string
	observers  map[string][]observerEntry
	nextObsID  int
	dirtyInts  map[string]struct{}
	dirtyLists map[string]struct{}
	saveTimer  *time.Timer
	closed     bool

	repo      repository.PreferenceRepository // nil for ephemeral sessions
	saveDelay time.Duration
	flushCtx  context.Context
}

// New creates a preference service backed by repo. Registered keys are loaded
// from the repository on registration. ctx is retained for background flushes
// and should carry the process logger.
func New(ctx context.Context, repo repository.PreferenceRepository, saveDelay time.Duration) *Service {
	if saveDelay <= 0 {
		saveDelay = DefaultSaveDelay
	}
	return &Service{
		ints:       make(map[string]int64),
		lists:      make(map[string][]string),
		observers:  make(map[string][]observerEntry),
		dirtyInts:  make(map[string]struct{}),
		dirtyLists: make(map[string]struct{}),
		repo:       repo,
		saveDelay:  saveDelay,
		flushCtx:   ctx,
	}
}

// NewEphemeral creates a memory-only preference service. Nothing is ever
// loaded or persisted; values vanish with the service.
func NewEphemeral() *Service {
	return &Service{
		ints:       make(map[string]int64),
		lists:      make(map[string][]string),
		observers:  make(map[string][]observerEntry),
		dirtyInts:  make(map[string]struct{}),
		dirtyLists: make(map[string]struct{}),
		flushCtx:   context.Background(),
	}
}

// Ephemeral reports whether the service persists anything.
func (s *Service) Ephemeral() bool {
	return s.repo == nil
}

// RegisterInt declares an integer preference with a default, loading any
// persisted value. Registering an already-registered key is a no-op.
func (s *Service) RegisterInt(ctx context.Context, key string, def int64) error {
	s.mu.Lock()
	if _, ok := s.ints[key]; ok {
		s.mu.Unlock()
		return nil
	}
	s.ints[key] = def
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}

	value, found, err := s.repo.LoadInt(ctx, key)
	if err != nil {
		return fmt.Errorf("prefs: load %q: %w", key, err)
	}
	if found {
		s.mu.Lock()
		s.ints[key] = value
		s.mu.Unlock()
	}
	return nil
}

// RegisterList declares a string-list preference, loading any persisted value.
func (s *Service) RegisterList(ctx context.Context, key string) error {
	s.mu.Lock()
	if _, ok := s.lists[key]; ok {
		s.mu.Unlock()
		return nil
	}
	s.lists[key] = nil
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}

	values, err := s.repo.LoadList(ctx, key)
	if err != nil {
		return fmt.Errorf("prefs: load %q: %w", key, err)
	}
	s.mu.Lock()
	s.lists[key] = values
	s.mu.Unlock()
	return nil
}

// GetInt returns the current value of an integer preference (the registered
// default when never set).
func (s *Service) GetInt(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ints[key]
}

// SetInt updates an integer preference and notifies observers when the value
// actually changed.
func (s *Service) SetInt(ctx context.Context, key string, value int64) {
	s.mu.Lock()
	if s.ints[key] == value {
		s.mu.Unlock()
		return
	}
	s.ints[key] = value
	s.dirtyInts[key] = struct{}{}
	s.mu.Unlock()

	s.notify(ctx, key)
}

// GetList returns a copy of the current list value.
func (s *Service) GetList(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.lists[key]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// AppendIfNotPresent adds value to the list unless already present.
// Returns true, and notifies observers, only when the list changed.
func (s *Service) AppendIfNotPresent(ctx context.Context, key, value string) bool {
	s.mu.Lock()
	for _, v := range s.lists[key] {
		if v == value {
			s.mu.Unlock()
			return false
		}
	}
	s.lists[key] = append(s.lists[key], value)
	s.dirtyLists[key] = struct{}{}
	s.mu.Unlock()

	s.notify(ctx, key)
	return true
}

// RemoveFromList removes value from the list. Returns true, and notifies
// observers, only when the value was present.
func (s *Service) RemoveFromList(ctx context.Context, key, value string) bool {
	s.mu.Lock()
	values := s.lists[key]
	idx := -1
	for i, v := range values {
		if v == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.lists[key] = append(values[:idx], values[idx+1:]...)
	s.dirtyLists[key] = struct{}{}
	s.mu.Unlock()

	s.notify(ctx, key)
	return true
}

// ClearList empties the list unconditionally. Clearing an already-empty list
// is a no-op and notifies nobody.
func (s *Service) ClearList(ctx context.Context, key string) {
	s.mu.Lock()
	if len(s.lists[key]) == 0 {
		s.mu.Unlock()
		return
	}
	s.lists[key] = nil
	s.dirtyLists[key] = struct{}{}
	s.mu.Unlock()

	s.notify(ctx, key)
}

// AddObserver subscribes fn to changes of key. The returned function
// unsubscribes.
func (s *Service) AddObserver(key string, fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextObsID++
	id := s.nextObsID
	s.observers[key] = append(s.observers[key], observerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entries := s.observers[key]
		for i, e := range entries {
			if e.id == id {
				s.observers[key] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// notify invokes the observers for key outside the service lock, so observers
// may re-read preference values.
func (s *Service) notify(ctx context.Context, key string) {
	s.mu.Lock()
	entries := make([]observerEntry, len(s.observers[key]))
	copy(entries, s.observers[key])
	s.mu.Unlock()

	for _, e := range entries {
		e.fn(key)
	}

	logging.FromContext(ctx).Trace().Str("pref", key).Int("observers", len(entries)).Msg("pref changed")
}

// ScheduleSave arranges for dirty preferences to be flushed to the repository
// after the save delay. Repeated calls within the window coalesce into one
// flush. No-op for ephemeral services.
func (s *Service) ScheduleSave() {
	if s.repo == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Reset(s.saveDelay)
		return
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, func() {
		if err := s.Flush(s.flushCtx); err != nil {
			logging.FromContext(s.flushCtx).Error().Err(err).Msg("scheduled pref flush failed")
		}
	})
}

// Flush writes all dirty preferences through the repository immediately.
func (s *Service) Flush(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.mu.Lock()
	ints := make(map[string]int64, len(s.dirtyInts))
	for key := range s.dirtyInts {
		ints[key] = s.ints[key]
	}
	lists := make(map[string][]string, len(s.dirtyLists))
	for key := range s.dirtyLists {
		values := make([]string, len(s.lists[key]))
		copy(values, s.lists[key])
		lists[key] = values
	}
	s.dirtyInts = make(map[string]struct{})
	s.dirtyLists = make(map[string]struct{})
	s.mu.Unlock()

	for key, value := range ints {
		if err := s.repo.SaveInt(ctx, key, value); err != nil {
			s.markDirtyInt(key)
			return fmt.Errorf("prefs: flush %q: %w", key, err)
		}
	}
	for key, values := range lists {
		if err := s.repo.SaveList(ctx, key, values); err != nil {
			s.markDirtyList(key)
			return fmt.Errorf("prefs: flush %q: %w", key, err)
		}
	}
	return nil
}

func (s *Service) markDirtyInt(key string) {
	s.mu.Lock()
	s.dirtyInts[key] = struct{}{}
	s.mu.Unlock()
}

func (s *Service) markDirtyList(key string) {
	s.mu.Lock()
	s.dirtyLists[key] = struct{}{}
	s.mu.Unlock()
}

// Close stops the save timer and performs a final flush.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServiceClosed
	}
	s.closed = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.mu.Unlock()

	return s.Flush(ctx)
}
