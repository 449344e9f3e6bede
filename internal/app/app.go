package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/ppetru/igsync/internal/instagram"
	"github.com/ppetru/igsync/internal/instagram/graphimpl"
	"github.com/ppetru/igsync/internal/ledger"
	"github.com/ppetru/igsync/internal/metrics"
	"github.com/ppetru/igsync/internal/migrations"
	"github.com/ppetru/igsync/internal/sqlite"
	"github.com/ppetru/igsync/internal/syncer"
	"github.com/ppetru/igsync/internal/syncer/syncerimpl"
	"github.com/ppetru/igsync/internal/wordpress"
	"github.com/ppetru/igsync/internal/wordpress/restimpl"
	"github.com/ppetru/igsync/pkg/config"
	"github.com/ppetru/igsync/pkg/logger"
	"go.uber.org/fx"
)

// Options carry the CLI run-mode flags into the container.
type Options struct {
	Sync      syncer.Options
	Every     time.Duration // 0 means run once and exit
	Verbose   bool
	NoMetrics bool
}

var Module = fx.Options(
	fx.Provide(
		config.New,
		fx.Annotate(
			func(cfg *config.Config, opts Options) *logger.Impl {
				return logger.New(logger.Opts{
					Env:       cfg.App.Env,
					Verbose:   opts.Verbose,
					SentryDSN: cfg.App.SentryUrl,
				})
			},
			fx.As(new(logger.Logger)),
		),
		sqlite.New,
	),
	fx.Provide(
		fx.Annotate(
			graphimpl.New,
			fx.As(new(instagram.Client)),
		),
		fx.Annotate(
			restimpl.New,
			fx.As(new(wordpress.Client)),
		),
		fx.Annotate(
			syncerimpl.New,
			fx.As(new(syncer.Client)),
		),
		newReporter,
	),
	ledger.Module,
	fx.Invoke(func(db *sql.DB, log logger.Logger) error {
		if err := migrations.Up(db); err != nil {
			return err
		}
		log.Debug("Ledger migrations applied")
		return nil
	}),
	fx.Invoke(run),
)

func newReporter(cfg *config.Config, opts Options) metrics.Reporter {
	if opts.NoMetrics || cfg.Metrics.PushGateway == "" {
		return metrics.NewNop()
	}
	return metrics.NewPrometheus(cfg.Metrics.PushGateway, cfg.Metrics.Job)
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger,
	syncClient syncer.Client, opts Options) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if opts.Every > 0 {
				// Interval mode: the scheduler owns the run loop and the
				// process stays up until a signal arrives.
				return syncClient.Schedule(ctx, opts.Sync, opts.Every)
			}

			go func() {
				_, err := syncClient.Run(ctx, opts.Sync)
				code := 0
				if err != nil {
					log.Error("Sync failed", "error", err)
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					log.Error("Failed to initiate shutdown", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
