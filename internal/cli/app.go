// Package cli wires the permission subsystem for command-line use.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/siteperm/internal/app/dispatch"
	"github.com/bnema/siteperm/internal/config"
	"github.com/bnema/siteperm/internal/db"
	"github.com/bnema/siteperm/internal/domain/build"
	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/infrastructure/delivery"
	"github.com/bnema/siteperm/internal/infrastructure/labels"
	"github.com/bnema/siteperm/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/siteperm/internal/logging"
	"github.com/bnema/siteperm/internal/notification"
	"github.com/bnema/siteperm/internal/permission"
	"github.com/bnema/siteperm/internal/prefs"
	"github.com/bnema/siteperm/internal/ui/prompt"
)

// Options controls how the App is assembled.
type Options struct {
	// Ephemeral runs a private session: nothing is read from or written to
	// the profile database.
	Ephemeral bool
}

// App holds the assembled permission subsystem and its execution contexts.
type App struct {
	Config    *config.Config
	BuildInfo build.Info

	Control  *dispatch.Queue
	FastPath *dispatch.Queue
	Service  *permission.Service
	Prefs    *prefs.Service
	Builder  *notification.Builder
	Delivery *delivery.Log

	db  *sql.DB // nil in ephemeral mode
	ctx context.Context
}

// NewApp loads configuration and builds the full stack: database, preference
// service, dispatch queues, permission service and notification builder.
func NewApp(opts Options) (*App, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	a := &App{
		Config:   cfg,
		Control:  dispatch.NewQueue(ctx, "control"),
		FastPath: dispatch.NewQueue(ctx, "fastpath"),
		Delivery: &delivery.Log{},
		ctx:      ctx,
	}

	if opts.Ephemeral {
		a.Prefs = prefs.NewEphemeral()
	} else {
		database, err := db.InitDB(cfg.Database.Path)
		if err != nil {
			a.closeQueues()
			return nil, fmt.Errorf("open database: %w", err)
		}
		database.SetMaxOpenConns(cfg.Database.MaxConnections)
		database.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)
		a.db = database
		a.Prefs = prefs.New(ctx, sqlite.NewPreferenceRepository(database), cfg.Permissions.SaveDelay)
		logger.Debug().Str("db_path", cfg.Database.Path).Msg("database connected")
	}

	labeler := labels.NewStatic(cfg.Permissions.Labels)

	var svc *permission.Service
	var svcErr error
	if err := a.Control.Sync(func(cctx context.Context) {
		svc, svcErr = permission.NewService(cctx, permission.ServiceConfig{
			Prefs:    a.Prefs,
			Control:  a.Control,
			FastPath: a.FastPath,
			Prompter: &prompt.Presenter{},
			Delivery: a.Delivery,
			Labels:   labeler,
		})
		if svcErr != nil || !opts.Ephemeral {
			return
		}
		// An ephemeral session starts from the configured default rather
		// than the persisted profile.
		if d := entity.ParseDecision(cfg.Permissions.DefaultDecision); d != entity.DecisionDefault {
			svcErr = svc.SetDefault(cctx, d)
		}
	}); err != nil {
		a.closeQueues()
		return nil, err
	}
	if svcErr != nil {
		a.closeQueues()
		return nil, svcErr
	}
	a.Service = svc

	builder, err := notification.NewBuilder(labeler, cfg.Notifications.MaxBodyLength)
	if err != nil {
		a.closeQueues()
		return nil, err
	}
	a.Builder = builder

	return a, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close drains the execution contexts, flushes pending preference writes and
// closes the database.
func (a *App) Close() error {
	if a.Service != nil {
		_ = a.Control.Sync(func(context.Context) { a.Service.Close() })
	}

	// Drain both contexts before touching storage; each Close blocks until
	// the queued tasks have run.
	var g errgroup.Group
	g.Go(func() error { a.Control.Close(); return nil })
	g.Go(func() error { a.FastPath.Close(); return nil })
	_ = g.Wait()

	// Final pref flush goes through the repository, so the database must
	// outlive it.
	var prefsErr, dbErr error
	if a.Prefs != nil {
		prefsErr = a.Prefs.Close(a.ctx)
	}
	if a.db != nil {
		dbErr = a.db.Close()
	}
	return errors.Join(prefsErr, dbErr)
}

func (a *App) closeQueues() {
	a.Control.Close()
	a.FastPath.Close()
}
