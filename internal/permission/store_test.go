package permission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/domain/repository/mocks"
	"github.com/bnema/siteperm/internal/prefs"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), prefs.NewEphemeral())
	require.NoError(t, err)
	return store
}

func TestStoreDefaultsToAsk(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.Equal(t, entity.DecisionAsk, store.DefaultDecision())
	assert.Equal(t, entity.DecisionAsk, store.GetDecision(ctx, "https://example.com"))
}

func TestStoreSetDefault(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.SetDefault(ctx, entity.DecisionBlock)
	assert.Equal(t, entity.DecisionBlock, store.DefaultDecision())
	assert.Equal(t, entity.DecisionBlock, store.GetDecision(ctx, "https://example.com"))

	// The sentinel is coerced before storage, never written as-is.
	store.SetDefault(ctx, entity.DecisionDefault)
	assert.Equal(t, entity.DecisionAsk, store.DefaultDecision())
	assert.Equal(t, entity.FallbackDecision, store.rawDefault())
}

func TestStoreGrantDenyMutualExclusion(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	origin := entity.Origin("https://example.com")

	store.Grant(ctx, origin)
	assert.Equal(t, entity.DecisionAllow, store.GetDecision(ctx, origin))

	store.Deny(ctx, origin)
	assert.Equal(t, entity.DecisionBlock, store.GetDecision(ctx, origin))
	assert.Empty(t, store.AllowedOrigins(ctx))
	assert.Equal(t, []entity.Origin{origin}, store.BlockedOrigins(ctx))

	store.Grant(ctx, origin)
	assert.Equal(t, entity.DecisionAllow, store.GetDecision(ctx, origin))
	assert.Empty(t, store.BlockedOrigins(ctx))
}

func TestStoreGrantIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	origin := entity.Origin("https://example.com")

	store.Grant(ctx, origin)
	store.Grant(ctx, origin)
	assert.Equal(t, []entity.Origin{origin}, store.AllowedOrigins(ctx))
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	origin := entity.Origin("https://example.com")

	store.Grant(ctx, origin)
	require.NoError(t, store.Reset(ctx, origin, true))
	assert.Equal(t, entity.DecisionAsk, store.GetDecision(ctx, origin))
}

func TestStoreResetInconsistent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	origin := entity.Origin("https://example.com")
	store.Grant(ctx, origin)

	// Asserting the wrong list fails and leaves the store untouched.
	err := store.Reset(ctx, origin, false)
	assert.ErrorIs(t, err, ErrInconsistentState)
	assert.Equal(t, entity.DecisionAllow, store.GetDecision(ctx, origin))

	err = store.Reset(ctx, "https://other.example.com", true)
	assert.ErrorIs(t, err, ErrInconsistentState)
}

func TestStoreResetAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	a := entity.Origin("https://a.example.com")
	b := entity.Origin("https://b.example.com")

	store.Grant(ctx, a)
	store.Deny(ctx, b)
	store.ResetAll(ctx)

	assert.Empty(t, store.AllowedOrigins(ctx))
	assert.Empty(t, store.BlockedOrigins(ctx))
	assert.Equal(t, entity.DecisionAsk, store.GetDecision(ctx, a))

	// Clearing already-empty lists is not an error.
	store.ResetAll(ctx)
	assert.Empty(t, store.AllowedOrigins(ctx))
}

func TestStoreSkipsMalformedPersistedOrigins(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewEphemeral()
	store, err := NewStore(ctx, p)
	require.NoError(t, err)

	p.AppendIfNotPresent(ctx, PrefAllowedOrigins, "https://good.example.com")
	p.AppendIfNotPresent(ctx, PrefAllowedOrigins, "not-a-url")

	assert.Equal(t, []entity.Origin{"https://good.example.com"}, store.AllowedOrigins(ctx))
}

func TestStoreLoadsPersistedState(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockPreferenceRepository(t)
	repo.EXPECT().LoadInt(mock.Anything, PrefDefaultDecision).
		Return(int64(entity.DecisionBlock), true, nil).Once()
	repo.EXPECT().LoadList(mock.Anything, PrefAllowedOrigins).
		Return([]string{"https://a.example.com"}, nil).Once()
	repo.EXPECT().LoadList(mock.Anything, PrefBlockedOrigins).
		Return([]string{"https://b.example.com"}, nil).Once()

	store, err := NewStore(ctx, prefs.New(ctx, repo, time.Hour))
	require.NoError(t, err)

	assert.Equal(t, entity.DecisionBlock, store.DefaultDecision())
	assert.Equal(t, entity.DecisionAllow, store.GetDecision(ctx, "https://a.example.com"))
	assert.Equal(t, entity.DecisionBlock, store.GetDecision(ctx, "https://b.example.com"))
	assert.False(t, store.Ephemeral())
}

func TestStoreSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.SetDefault(ctx, entity.DecisionAllow)
	store.Grant(ctx, "https://a.example.com")
	store.Deny(ctx, "https://b.example.com")

	snap := store.Snapshot(ctx)
	assert.Equal(t, entity.DecisionAllow, snap.Default)
	assert.Equal(t, []entity.Origin{"https://a.example.com"}, snap.Allowed)
	assert.Equal(t, []entity.Origin{"https://b.example.com"}, snap.Blocked)
}
