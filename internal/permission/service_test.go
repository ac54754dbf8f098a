package permission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/siteperm/internal/app/dispatch"
	"github.com/bnema/siteperm/internal/application/port"
	portmocks "github.com/bnema/siteperm/internal/application/port/mocks"
	"github.com/bnema/siteperm/internal/domain/entity"
	repomocks "github.com/bnema/siteperm/internal/domain/repository/mocks"
	"github.com/bnema/siteperm/internal/prefs"
)

type serviceFixture struct {
	t        *testing.T
	control  *dispatch.Queue
	fastPath *dispatch.Queue
	prompter *portmocks.MockPromptPresenter
	delivery *portmocks.MockDecisionDelivery
	svc      *Service
}

func newServiceFixture(t *testing.T, p *prefs.Service) *serviceFixture {
	t.Helper()
	ctx := context.Background()

	f := &serviceFixture{
		t:        t,
		control:  dispatch.NewQueue(ctx, "control"),
		fastPath: dispatch.NewQueue(ctx, "fastpath"),
		prompter: portmocks.NewMockPromptPresenter(t),
		delivery: portmocks.NewMockDecisionDelivery(t),
	}
	t.Cleanup(func() {
		f.control.Close()
		f.fastPath.Close()
	})

	var err error
	require.NoError(t, f.control.Sync(func(cctx context.Context) {
		f.svc, err = NewService(cctx, ServiceConfig{
			Prefs:    p,
			Control:  f.control,
			FastPath: f.fastPath,
			Prompter: f.prompter,
			Delivery: f.delivery,
		})
	}))
	require.NoError(t, err)
	return f
}

// onControl runs fn on the control context and waits for it.
func (f *serviceFixture) onControl(fn func(ctx context.Context)) {
	f.t.Helper()
	require.NoError(f.t, f.control.Sync(fn))
}

// pump drains both queues so every posted propagation has been applied.
func (f *serviceFixture) pump() {
	f.t.Helper()
	require.NoError(f.t, f.control.Sync(func(context.Context) {}))
	require.NoError(f.t, f.fastPath.Sync(func(context.Context) {}))
}

// permissivePrefs builds a repository-backed preference service whose
// repository accepts anything, with a save delay long enough to never fire.
func permissivePrefs(t *testing.T) *prefs.Service {
	t.Helper()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().LoadInt(mock.Anything, mock.Anything).Return(0, false, nil).Maybe()
	repo.EXPECT().LoadList(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	repo.EXPECT().SaveInt(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	repo.EXPECT().SaveList(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return prefs.New(context.Background(), repo, time.Hour)
}

func TestServicePopulatesCacheFromPersistedState(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().LoadInt(mock.Anything, PrefDefaultDecision).
		Return(int64(entity.DecisionBlock), true, nil).Once()
	repo.EXPECT().LoadList(mock.Anything, PrefAllowedOrigins).
		Return([]string{"https://allowed.example.com"}, nil).Once()
	repo.EXPECT().LoadList(mock.Anything, PrefBlockedOrigins).
		Return([]string{"https://blocked.example.com"}, nil).Once()

	f := newServiceFixture(t, prefs.New(ctx, repo, time.Hour))
	f.pump()

	assert.True(t, f.svc.CacheReady())
	assert.Equal(t, entity.DecisionAllow, f.svc.Query("https://allowed.example.com"))
	assert.Equal(t, entity.DecisionBlock, f.svc.Query("https://blocked.example.com"))
	assert.Equal(t, entity.DecisionBlock, f.svc.Query("https://unknown.example.com"))
}

func TestServiceGrantDenyPropagation(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
	})
	f.pump()
	assert.Equal(t, entity.DecisionAllow, f.svc.Query(origin))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Deny(ctx, origin))
	})
	f.pump()
	assert.Equal(t, entity.DecisionBlock, f.svc.Query(origin))

	// Store and cache agree once propagation has drained.
	f.onControl(func(ctx context.Context) {
		allowed, err := f.svc.AllowedOrigins(ctx)
		require.NoError(t, err)
		assert.Empty(t, allowed)
	})
	snap := f.svc.cache.snapshot()
	assert.Empty(t, snap.Allowed)
	assert.Equal(t, []entity.Origin{origin}, snap.Blocked)
}

func TestServiceSetDefaultPropagatesThroughObserver(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.SetDefault(ctx, entity.DecisionBlock))
	})
	f.pump()

	assert.Equal(t, entity.DecisionBlock, f.svc.Query("https://unknown.example.com"))
}

func TestServiceResetPropagation(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
	})
	f.pump()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Reset(ctx, origin, true))
	})
	f.pump()
	assert.Equal(t, entity.DecisionAsk, f.svc.Query(origin))
}

func TestServiceResetInconsistentLeavesStateUnchanged(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
	})
	f.pump()

	f.onControl(func(ctx context.Context) {
		assert.ErrorIs(t, f.svc.Reset(ctx, origin, false), ErrInconsistentState)
		d, err := f.svc.GetDecision(ctx, origin)
		require.NoError(t, err)
		assert.Equal(t, entity.DecisionAllow, d)
	})
	f.pump()
	assert.Equal(t, entity.DecisionAllow, f.svc.Query(origin))
}

func TestServiceResetAll(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, "https://a.example.com"))
		require.NoError(t, f.svc.Deny(ctx, "https://b.example.com"))
	})
	f.pump()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.ResetAll(ctx))
	})
	f.pump()

	assert.Equal(t, entity.DecisionAsk, f.svc.Query("https://a.example.com"))
	assert.Equal(t, entity.DecisionAsk, f.svc.Query("https://b.example.com"))

	// Running it again against empty lists is a quiet no-op.
	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.ResetAll(ctx))
	})
	f.pump()
}

func TestRequestPermissionAlreadyDecided(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}

	f.delivery.EXPECT().
		DeliverCompletion(mock.Anything, requester, entity.DecisionAllow).Once()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
		require.NoError(t, f.svc.RequestPermission(ctx, origin, requester, NewSurface()))
	})
	f.pump()
	// No prompt was shown: the prompter mock has no expectations and would
	// fail the test on any call.
}

func TestRequestPermissionPromptAllow(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}

	var respond func(port.PromptOutcome)
	f.prompter.EXPECT().
		ShowPrompt(mock.Anything, origin, "example.com", requester, mock.Anything).
		Run(func(_ context.Context, _ entity.Origin, _ string, _ entity.Requester, r func(port.PromptOutcome)) {
			respond = r
		}).Once()
	f.delivery.EXPECT().
		DeliverCompletion(mock.Anything, requester, entity.DecisionAllow).Once()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.RequestPermission(ctx, origin, requester, NewSurface()))
	})
	require.NotNil(t, respond)

	respond(port.PromptAllow)
	f.pump()

	assert.Equal(t, entity.DecisionAllow, f.svc.Query(origin))
	f.onControl(func(ctx context.Context) {
		stats, err := f.svc.PromptStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stats{Granted: 1}, stats)
	})
}

func TestRequestPermissionPromptDismissed(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}

	var respond func(port.PromptOutcome)
	f.prompter.EXPECT().
		ShowPrompt(mock.Anything, origin, "example.com", requester, mock.Anything).
		Run(func(_ context.Context, _ entity.Origin, _ string, _ entity.Requester, r func(port.PromptOutcome)) {
			respond = r
		}).Once()
	f.delivery.EXPECT().
		DeliverCompletion(mock.Anything, requester, entity.DecisionAsk).Once()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.RequestPermission(ctx, origin, requester, NewSurface()))
	})
	require.NotNil(t, respond)

	respond(port.PromptDismissed)
	f.pump()

	// Dismissal records nothing: the next request will prompt again.
	assert.Equal(t, entity.DecisionAsk, f.svc.Query(origin))
	f.onControl(func(ctx context.Context) {
		stats, err := f.svc.PromptStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stats{Ignored: 1}, stats)
	})
}

func TestRequestPermissionSurfaceDestroyed(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}
	surface := NewSurface()

	var respond func(port.PromptOutcome)
	f.prompter.EXPECT().
		ShowPrompt(mock.Anything, origin, "example.com", requester, mock.Anything).
		Run(func(_ context.Context, _ entity.Origin, _ string, _ entity.Requester, r func(port.PromptOutcome)) {
			respond = r
		}).Once()
	f.delivery.EXPECT().
		DeliverCompletion(mock.Anything, requester, entity.DecisionAsk).Once()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.RequestPermission(ctx, origin, requester, surface))
	})
	require.NotNil(t, respond)

	surface.Destroy()
	f.pump()

	// The late prompt response must not resurrect the completed request.
	respond(port.PromptAllow)
	f.pump()

	f.delivery.AssertNumberOfCalls(t, "DeliverCompletion", 1)
	assert.Equal(t, entity.DecisionAsk, f.svc.Query(origin))
	f.onControl(func(ctx context.Context) {
		stats, err := f.svc.PromptStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stats{Ignored: 1}, stats)
	})
}

func TestRequestPermissionSurfaceAlreadyGone(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	origin := entity.Origin("https://example.com")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}

	surface := NewSurface()
	surface.Destroy()

	f.delivery.EXPECT().
		DeliverCompletion(mock.Anything, requester, entity.DecisionAsk).Once()

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.RequestPermission(ctx, origin, requester, surface))
	})
	f.pump()
}

func TestRequestPermissionUsesOriginLabel(t *testing.T) {
	ctx := context.Background()
	control := dispatch.NewQueue(ctx, "control")
	fastPath := dispatch.NewQueue(ctx, "fastpath")
	t.Cleanup(func() {
		control.Close()
		fastPath.Close()
	})

	origin := entity.Origin("ext://abcdefgh")
	requester := entity.Requester{ProcessID: 1, RouteID: 2, RequestID: 3}

	prompter := portmocks.NewMockPromptPresenter(t)
	prompter.EXPECT().
		ShowPrompt(mock.Anything, origin, "My Extension", requester, mock.Anything).Once()
	delivery := portmocks.NewMockDecisionDelivery(t)
	labels := portmocks.NewMockOriginLabeler(t)
	labels.EXPECT().LabelForOrigin(mock.Anything, origin).Return("My Extension", true).Once()

	var svc *Service
	var err error
	require.NoError(t, control.Sync(func(cctx context.Context) {
		svc, err = NewService(cctx, ServiceConfig{
			Prefs:    prefs.NewEphemeral(),
			Control:  control,
			FastPath: fastPath,
			Prompter: prompter,
			Delivery: delivery,
			Labels:   labels,
		})
		require.NoError(t, err)
		require.NoError(t, svc.RequestPermission(cctx, origin, requester, NewSurface()))
	}))
}

func TestServiceEphemeralSession(t *testing.T) {
	f := newServiceFixture(t, prefs.NewEphemeral())
	origin := entity.Origin("https://example.com")

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
	})
	f.pump()

	// The in-session grant is visible to both read paths, it just never
	// reaches durable storage.
	assert.Equal(t, entity.DecisionAllow, f.svc.Query(origin))
	f.onControl(func(ctx context.Context) {
		d, err := f.svc.GetDecision(ctx, origin)
		require.NoError(t, err)
		assert.Equal(t, entity.DecisionAllow, d)
	})
}

func TestServiceEphemeralDefaultAndResetPropagate(t *testing.T) {
	f := newServiceFixture(t, prefs.NewEphemeral())
	origin := entity.Origin("https://example.com")

	// Observer-driven mutations reach the cache in ephemeral sessions too.
	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.SetDefault(ctx, entity.DecisionBlock))
	})
	f.pump()
	assert.Equal(t, entity.DecisionBlock, f.svc.Query("https://unknown.example.com"))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Grant(ctx, origin))
	})
	f.pump()
	assert.Equal(t, entity.DecisionAllow, f.svc.Query(origin))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Reset(ctx, origin, true))
	})
	f.pump()
	// The reset origin falls back to the in-session default.
	assert.Equal(t, entity.DecisionBlock, f.svc.Query(origin))

	f.onControl(func(ctx context.Context) {
		require.NoError(t, f.svc.Deny(ctx, "https://b.example.com"))
		require.NoError(t, f.svc.ResetAll(ctx))
	})
	f.pump()
	assert.Equal(t, entity.DecisionBlock, f.svc.Query("https://b.example.com"))
	snap := f.svc.cache.snapshot()
	assert.Empty(t, snap.Allowed)
	assert.Empty(t, snap.Blocked)
}

func TestServiceRejectsWrongContext(t *testing.T) {
	f := newServiceFixture(t, permissivePrefs(t))
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Grant(ctx, "https://example.com"), dispatch.ErrWrongContext)
	assert.ErrorIs(t, f.svc.Deny(ctx, "https://example.com"), dispatch.ErrWrongContext)
	assert.ErrorIs(t, f.svc.SetDefault(ctx, entity.DecisionBlock), dispatch.ErrWrongContext)
	assert.ErrorIs(t, f.svc.ResetAll(ctx), dispatch.ErrWrongContext)

	_, err := f.svc.GetDecision(ctx, "https://example.com")
	assert.ErrorIs(t, err, dispatch.ErrWrongContext)

	// Query carries no token requirement at all.
	assert.Equal(t, entity.DecisionAsk, f.svc.Query("https://example.com"))
}
