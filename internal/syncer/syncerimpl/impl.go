// Package syncerimpl orchestrates one sync run: fetch new media from
// Instagram, stage it in the ledger, then mirror every pending item to
// WordPress one at a time.
package syncerimpl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ppetru/igsync/internal/domain"
	"github.com/ppetru/igsync/internal/instagram"
	"github.com/ppetru/igsync/internal/ledger"
	"github.com/ppetru/igsync/internal/mapper"
	"github.com/ppetru/igsync/internal/metrics"
	"github.com/ppetru/igsync/internal/syncer"
	"github.com/ppetru/igsync/internal/wordpress"
	"github.com/ppetru/igsync/pkg/config"
	apperrors "github.com/ppetru/igsync/pkg/errors"
	"github.com/ppetru/igsync/pkg/logger"
	"github.com/ppetru/igsync/pkg/retry"
	"go.uber.org/fx"
)

const hashPrefixLen = 12

type Opts struct {
	fx.In

	Instagram instagram.Client
	WordPress wordpress.Client
	Ledger    ledger.Repository
	Metrics   metrics.Reporter
	Logger    logger.Logger
	Config    *config.Config
}

type SyncerImpl struct {
	Instagram instagram.Client
	WordPress wordpress.Client
	Ledger    ledger.Repository
	Metrics   metrics.Reporter
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *SyncerImpl {
	return &SyncerImpl{
		Instagram: opts.Instagram,
		WordPress: opts.WordPress,
		Ledger:    opts.Ledger,
		Metrics:   opts.Metrics,
		Logger:    opts.Logger.WithComponent("Syncer"),
		Config:    opts.Config,
	}
}

var _ syncer.Client = (*SyncerImpl)(nil)

func (s *SyncerImpl) retryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = s.Config.HTTP.RetryAttempts
	cfg.InitialInterval = s.Config.HTTP.RetryInterval
	return cfg
}

func (s *SyncerImpl) Run(ctx context.Context, opts syncer.Options) (domain.Summary, error) {
	start := time.Now()
	var sum domain.Summary

	err := s.run(ctx, opts, &sum)

	sum.Duration = time.Since(start)
	s.Metrics.SetDuration(sum.Duration)
	if err != nil {
		s.Metrics.IncError()
	} else {
		s.Metrics.MarkSuccess()
	}
	if pushErr := s.Metrics.Push(ctx); pushErr != nil {
		s.Logger.Warn("Failed to push metrics", "error", pushErr)
	}

	s.Logger.Info("Sync finished",
		"fetched", sum.Fetched,
		"synced", sum.Synced,
		"skipped_binaries", sum.SkippedBinaries,
		"failed", sum.Failed,
		"duration", sum.Duration.Round(time.Millisecond).String(),
	)
	return sum, err
}

func (s *SyncerImpl) run(ctx context.Context, opts syncer.Options, sum *domain.Summary) error {
	if !opts.PostOnly {
		if err := s.fetchPhase(ctx, opts, sum); err != nil {
			return err
		}
	}
	if !opts.FetchOnly {
		if err := s.postPhase(ctx, opts, sum); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncerImpl) fetchPhase(ctx context.Context, opts syncer.Options, sum *domain.Summary) error {
	s.Logger.Info("Fetching new media from Instagram")

	items, err := s.Instagram.FetchNewMedia(ctx, s.Ledger.HasMedia)
	if err != nil {
		return err
	}

	for _, item := range items {
		if opts.DryRun {
			s.Logger.Info("Dry run, would stage item",
				"media_id", item.ID,
				"media_type", string(item.MediaType),
				"timestamp", item.Timestamp.Format(time.RFC3339),
			)
			continue
		}
		if err := s.Ledger.StageMedia(ctx, item); err != nil {
			return err
		}
	}

	sum.Fetched = len(items)
	s.Metrics.AddFetched(len(items))
	return nil
}

func (s *SyncerImpl) postPhase(ctx context.Context, opts syncer.Options, sum *domain.Summary) error {
	if opts.ResetMedia && !opts.DryRun {
		if _, err := s.Ledger.ResetBinaries(ctx); err != nil {
			return err
		}
	}

	pending, err := s.Ledger.PendingMedia(ctx)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		s.Logger.Info("Posting pending media to WordPress", "count", len(pending))
	}

	for _, item := range pending {
		skipped, err := s.processItem(ctx, item, opts)
		sum.SkippedBinaries += skipped
		if err != nil {
			if apperrors.IsFatal(err) {
				return err
			}
			// The ledger was not updated for this item; a future run
			// will retry it. Later items are independent.
			s.Logger.Error("Failed to sync item", "media_id", item.ID, "error", err)
			sum.Failed++
			s.Metrics.IncError()
			continue
		}
		if !opts.DryRun {
			sum.Synced++
			s.Metrics.IncSynced()
		}
	}
	return nil
}

// processItem mirrors a single item: upload all media binaries, create
// the post, then record it in the ledger, strictly in that order. It
// returns how many uploads were skipped through the dedup ledger.
func (s *SyncerImpl) processItem(ctx context.Context, item domain.MediaItem, opts syncer.Options) (int, error) {
	if opts.DryRun {
		s.Logger.Info("Dry run, would sync item",
			"media_id", item.ID,
			"title", mapper.Title(item.Caption),
			"media_count", len(item.Sources),
			"tags", mapper.ExtractTags(item.Caption),
		)
		return 0, nil
	}

	skipped := 0
	attachments := make([]mapper.Attachment, 0, len(item.Sources))
	for _, src := range item.Sources {
		ref, reused, err := s.resolveBinary(ctx, item.ID, src)
		if err != nil {
			return skipped, err
		}
		if reused {
			skipped++
			s.Metrics.IncSkippedBinary()
		}
		attachments = append(attachments, mapper.Attachment{Source: src, Ref: ref})
	}

	tagIDs := s.ensureTags(ctx, item)
	draft := mapper.Draft(item, s.Config.WordPress.CategoryID, tagIDs, attachments)

	var wpPostID int
	err := retry.Do(ctx, s.Logger, "CreatePost", func() error {
		id, err := s.WordPress.CreatePost(ctx, draft)
		if err != nil {
			if apperrors.IsSinkRejected(err) {
				return retry.Permanent(err)
			}
			return err
		}
		wpPostID = id
		return nil
	}, s.retryConfig())
	if err != nil {
		return skipped, err
	}

	if err := s.Ledger.RecordPost(ctx, item.ID, wpPostID); err != nil {
		return skipped, err
	}

	s.Logger.Info("Mirrored item", "media_id", item.ID, "wp_post_id", wpPostID)
	return skipped, nil
}

// resolveBinary returns the WordPress media for a source, uploading it
// only when neither the ledger nor the WordPress library already has
// the identical binary.
func (s *SyncerImpl) resolveBinary(ctx context.Context, mediaID string, src domain.MediaSource) (domain.MediaRef, bool, error) {
	var data []byte
	err := retry.Do(ctx, s.Logger, "DownloadMedia", func() error {
		var derr error
		data, derr = s.Instagram.DownloadMedia(ctx, src.URL)
		return derr
	}, s.retryConfig())
	if err != nil {
		return domain.MediaRef{}, false, err
	}

	hash := contentHash(data)
	if ref, ok, err := s.Ledger.BinaryRef(ctx, hash); err != nil {
		return domain.MediaRef{}, false, err
	} else if ok {
		s.Logger.Debug("Reusing uploaded media", "media_id", mediaID, "wp_media_id", ref.ID)
		return ref, true, nil
	}

	filename := fmt.Sprintf("ig-%s%s", hash[:hashPrefixLen], src.Extension())

	// A crash between upload success and the ledger write leaves an
	// orphan in the media library. The filename embeds the hash prefix,
	// so probe for it before uploading again. Best effort only.
	if ref, ok, err := s.WordPress.FindMedia(ctx, "ig-"+hash[:hashPrefixLen]); err != nil {
		s.Logger.Debug("Media library probe failed, uploading anyway", "error", err)
	} else if ok {
		if err := s.Ledger.RecordBinary(ctx, hash, ref); err != nil {
			return domain.MediaRef{}, false, err
		}
		s.Logger.Info("Recovered uploaded media from library", "media_id", mediaID, "wp_media_id", ref.ID)
		return ref, true, nil
	}

	var ref domain.MediaRef
	err = retry.Do(ctx, s.Logger, "UploadMedia", func() error {
		uploaded, uerr := s.WordPress.UploadMedia(ctx, data, filename, src.ContentType())
		if uerr != nil {
			if apperrors.IsSinkRejected(uerr) {
				return retry.Permanent(uerr)
			}
			return uerr
		}
		ref = uploaded
		return nil
	}, s.retryConfig())
	if err != nil {
		return domain.MediaRef{}, false, err
	}

	if err := s.Ledger.RecordBinary(ctx, hash, ref); err != nil {
		return domain.MediaRef{}, false, err
	}
	return ref, false, nil
}

// ensureTags resolves hashtags to WordPress tag IDs. A tag failure
// drops only that tag, never the item.
func (s *SyncerImpl) ensureTags(ctx context.Context, item domain.MediaItem) []int {
	tags := mapper.ExtractTags(item.Caption)
	ids := make([]int, 0, len(tags))
	for _, tag := range tags {
		id, err := s.WordPress.EnsureTag(ctx, tag)
		if err != nil {
			s.Logger.Warn("Failed to resolve tag, skipping it", "media_id", item.ID, "tag", tag, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
