package syncerimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/ppetru/igsync/internal/syncer"
)

// Schedule runs the sync on a fixed interval. Singleton mode keeps a
// slow run from overlapping the next one; two ledger writers would not
// be safe.
func (s *SyncerImpl) Schedule(ctx context.Context, opts syncer.Options, every time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			if _, err := s.Run(ctx, opts); err != nil {
				s.Logger.Error("Scheduled sync failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	scheduler.Start()
	s.Logger.Info("Scheduled periodic sync", "every", every.String())

	go func() {
		<-ctx.Done()
		s.Logger.Info("Stopping sync scheduler")
		if err := scheduler.Shutdown(); err != nil {
			s.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}
