package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/data/db"
	apphttp "github.com/yungbote/deliverysla-backend/internal/http"
	"github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
	"github.com/yungbote/deliverysla-backend/internal/jobs/scheduler"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"github.com/yungbote/deliverysla-backend/internal/platform/instancelock"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Registry *runtime.Registry
	Host     *scheduler.Host
	HTTP     *apphttp.Server

	lock         *instancelock.Lock
	otelShutdown func(context.Context) error
	ownsDB       bool
}

// New connects to the configured database and wires every component.
// Registration errors are returned here and are fatal for the caller.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	theDB, err := db.Connect(cfg.DB(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrateAll(theDB); err != nil {
			_ = db.Close(theDB)
			log.Sync()
			return nil, err
		}
	}

	a, err := build(ctx, cfg, log, theDB)
	if err != nil {
		_ = db.Close(theDB)
		log.Sync()
		return nil, err
	}
	a.ownsDB = true
	return a, nil
}

func build(ctx context.Context, cfg Config, log *logger.Logger, theDB *gorm.DB) (*App, error) {
	metrics := observability.Init()
	otelShutdown := observability.InitOTel(ctx, log, cfg.OtelConfig())

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(ctx, cfg, log, reposet, metrics)
	if err != nil {
		return nil, err
	}
	registry, err := wireRegistry(log, serviceset)
	if err != nil {
		serviceset.close(log)
		return nil, err
	}
	host, err := wireScheduler(ctx, cfg, log, theDB, reposet, registry, metrics)
	if err != nil {
		serviceset.close(log)
		return nil, err
	}

	a := &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		Registry:     registry,
		Host:         host,
		otelShutdown: otelShutdown,
	}

	if strings.TrimSpace(cfg.HTTPAddr) != "" {
		var runner *scheduler.Host
		if cfg.Scheduler.Enabled {
			runner = host
		}
		a.HTTP = wireServer(cfg, log, metrics, wireHandlers(log, theDB, reposet, serviceset, jobRunner(runner)))
	}

	if cfg.Scheduler.Enabled && strings.TrimSpace(cfg.InstanceLockRedisURL) != "" {
		if a.lock, err = instancelock.New(cfg.LockConfig(), log); err != nil {
			serviceset.close(log)
			return nil, fmt.Errorf("init instance lock: %w", err)
		}
	}
	return a, nil
}

// Serve runs the scheduler and the ops HTTP server until ctx is done or
// SIGINT/SIGTERM arrives, then waits for running jobs to finish.
func (a *App) Serve(ctx context.Context) error {
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if a.Cfg.Scheduler.Enabled {
		if a.lock != nil {
			if err := a.lock.Acquire(gctx); err != nil {
				return err
			}
			defer func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := a.lock.Release(releaseCtx); err != nil {
					a.Log.Warn("Instance lock release failed", "error", err)
				}
			}()
			g.Go(func() error { return a.lock.Hold(gctx) })
		}

		a.Host.Start(gctx)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.Cfg.ShutdownTimeout)
			defer cancel()
			return a.Host.Shutdown(shutdownCtx)
		})
	} else {
		a.Log.Info("Scheduler disabled; serving ops endpoints only")
	}

	if a.HTTP != nil {
		g.Go(func() error { return a.HTTP.Run(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunJob executes one registered job immediately, recording its execution.
func (a *App) RunJob(ctx context.Context, id string) error {
	return a.Host.RunNow(ctx, id)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Services.close(a.Log)
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.ownsDB && a.DB != nil {
		if err := db.Close(a.DB); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
