package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ppetru/igsync/internal/app"
	"github.com/ppetru/igsync/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:          "igsync",
		Short:        "Mirror Instagram posts to a WordPress blog",
		Long: "igsync fetches new media from an Instagram account and recreates each post\n" +
			"on a WordPress blog with its original timestamp, media and tags. Runs to\n" +
			"completion and exits; re-running is safe and creates no duplicates.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Sync.FetchOnly && opts.Sync.PostOnly {
				return errors.New("--fetch-only and --post-only are mutually exclusive")
			}
			return runApp(opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Sync.FetchOnly, "fetch-only", false, "Only fetch from Instagram")
	flags.BoolVar(&opts.Sync.PostOnly, "post-only", false, "Only post pending media to WordPress")
	flags.BoolVar(&opts.Sync.DryRun, "dry-run", false, "Report what would be posted without writing anything")
	flags.BoolVar(&opts.Sync.ResetMedia, "reset-media", false, "Reset media upload records before posting")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed progress")
	flags.BoolVar(&opts.NoMetrics, "no-metrics", false, "Disable Prometheus metrics pushing")
	flags.DurationVar(&opts.Every, "every", 0, "Run on an interval instead of once (e.g. 30m)")

	return cmd
}

func runApp(opts app.Options) error {
	log := logger.New(logger.Opts{Verbose: opts.Verbose})

	fxApp := fx.New(
		fx.Logger(log),
		fx.Supply(opts),
		app.Module,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for the run to finish or for an interrupt signal.
	sig := <-fxApp.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}

	if sig.ExitCode != 0 {
		os.Exit(sig.ExitCode)
	}
	return nil
}
