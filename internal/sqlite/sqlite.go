package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ppetru/igsync/pkg/config"
	"github.com/ppetru/igsync/pkg/logger"
	"go.uber.org/fx"
	_ "modernc.org/sqlite"
)

// Opts holds dependencies for opening the ledger database.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New opens the SQLite ledger file and manages its lifecycle.
func New(opts Opts) (*sql.DB, error) {
	db, err := sql.Open("sqlite", opts.Config.LedgerDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// SQLite allows a single writer; the run loop is sequential anyway.
	db.SetMaxOpenConns(1)

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := db.PingContext(ctx); err != nil {
					return fmt.Errorf("failed to open ledger: %w", err)
				}
				opts.Logger.Info("Ledger opened", "path", opts.Config.Ledger.Path)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return db.Close()
			},
		},
	)

	return db, nil
}
