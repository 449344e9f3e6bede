package syncer

import (
	"context"
	"time"

	"github.com/ppetru/igsync/internal/domain"
)

// Options select which phases of a run execute and how.
type Options struct {
	// FetchOnly stages new Instagram media without posting.
	FetchOnly bool
	// PostOnly mirrors already-staged media without fetching.
	PostOnly bool
	// DryRun reports what would be posted without touching WordPress
	// or the ledger.
	DryRun bool
	// ResetMedia clears the binary hash mappings before posting,
	// forcing fresh uploads.
	ResetMedia bool
}

type Client interface {
	// Run executes one sync pass to completion. The returned summary is
	// valid even when err is non-nil.
	Run(ctx context.Context, opts Options) (domain.Summary, error)

	// Schedule runs the sync on a fixed interval until ctx is
	// cancelled. For environments without an external scheduler.
	Schedule(ctx context.Context, opts Options, every time.Duration) error
}
