package syncerimpl_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/ppetru/igsync/internal/domain"
	"github.com/ppetru/igsync/internal/instagram"
	igmocks "github.com/ppetru/igsync/internal/instagram/mocks"
	ledgermocks "github.com/ppetru/igsync/internal/ledger/mocks"
	"github.com/ppetru/igsync/internal/metrics"
	"github.com/ppetru/igsync/internal/syncer"
	"github.com/ppetru/igsync/internal/syncer/syncerimpl"
	wpmocks "github.com/ppetru/igsync/internal/wordpress/mocks"
	"github.com/ppetru/igsync/pkg/config"
	apperrors "github.com/ppetru/igsync/pkg/errors"
	"github.com/ppetru/igsync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	instagram *igmocks.MockClient
	wordpress *wpmocks.MockClient
	ledger    *ledgermocks.MockRepository
	syncer    *syncerimpl.SyncerImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.WordPress.CategoryID = 7
	cfg.HTTP.RetryAttempts = 1
	cfg.HTTP.RetryInterval = time.Millisecond

	f := &fixture{
		instagram: igmocks.NewMockClient(ctrl),
		wordpress: wpmocks.NewMockClient(ctrl),
		ledger:    ledgermocks.NewMockRepository(ctrl),
	}
	f.syncer = syncerimpl.New(syncerimpl.Opts{
		Instagram: f.instagram,
		WordPress: f.wordpress,
		Ledger:    f.ledger,
		Metrics:   metrics.NewNop(),
		Logger:    logger.NewNop(),
		Config:    cfg,
	})
	return f
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func imageItem(id, url string) domain.MediaItem {
	ts, _ := time.Parse(time.RFC3339, "2023-05-01T10:00:00+02:00")
	return domain.MediaItem{
		ID:        id,
		Caption:   "caption " + id,
		MediaType: domain.MediaTypeImage,
		Timestamp: ts,
		Sources:   []domain.MediaSource{{ID: id, MediaType: domain.MediaTypeImage, URL: url}},
	}
}

func noRef() domain.MediaRef { return domain.MediaRef{} }

// Two new items sharing a byte-identical binary: one upload, two posts,
// one binary ledger entry.
func TestRunSharedBinaryUploadedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	itemA := imageItem("1", "https://cdn.example/a.jpg")
	itemB := imageItem("2", "https://cdn.example/b.jpg")
	shared := []byte("same-bytes")
	hash := hashOf(shared)
	ref := domain.MediaRef{ID: 10, SourceURL: "https://wp.example/a.jpg"}

	f.instagram.EXPECT().FetchNewMedia(gomock.Any(), gomock.Any()).
		Return([]domain.MediaItem{itemA, itemB}, nil)
	f.ledger.EXPECT().StageMedia(ctx, itemA).Return(nil)
	f.ledger.EXPECT().StageMedia(ctx, itemB).Return(nil)
	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{itemA, itemB}, nil)

	// Item A: fresh binary, uploaded then recorded.
	f.instagram.EXPECT().DownloadMedia(ctx, itemA.Sources[0].URL).Return(shared, nil)
	f.ledger.EXPECT().BinaryRef(ctx, hash).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, "ig-"+hash[:12]).Return(noRef(), false, nil)
	f.wordpress.EXPECT().UploadMedia(ctx, shared, "ig-"+hash[:12]+".jpg", "image/jpeg").Return(ref, nil)
	f.ledger.EXPECT().RecordBinary(ctx, hash, ref).Return(nil)
	f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(100, nil)
	f.ledger.EXPECT().RecordPost(ctx, "1", 100).Return(nil)

	// Item B: identical bytes, the upload is skipped via the ledger.
	f.instagram.EXPECT().DownloadMedia(ctx, itemB.Sources[0].URL).Return(shared, nil)
	f.ledger.EXPECT().BinaryRef(ctx, hash).Return(ref, true, nil)
	f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(101, nil)
	f.ledger.EXPECT().RecordPost(ctx, "2", 101).Return(nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Fetched)
	assert.Equal(t, 2, sum.Synced)
	assert.Equal(t, 1, sum.SkippedBinaries)
	assert.Zero(t, sum.Failed)
}

// Uploads complete before the post is created, and the post exists
// before the ledger records it.
func TestRunOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")
	data := []byte("bytes")
	hash := hashOf(data)
	ref := domain.MediaRef{ID: 10}

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, gomock.Any()).Return(data, nil)
	f.ledger.EXPECT().BinaryRef(ctx, hash).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, gomock.Any()).Return(noRef(), false, nil)

	gomock.InOrder(
		f.wordpress.EXPECT().UploadMedia(ctx, data, gomock.Any(), gomock.Any()).Return(ref, nil),
		f.ledger.EXPECT().RecordBinary(ctx, hash, ref).Return(nil),
		f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(100, nil),
		f.ledger.EXPECT().RecordPost(ctx, "1", 100).Return(nil),
	)

	_, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	require.NoError(t, err)
}

// A rejected item does not stop the run; later items are independent.
func TestRunSinkRejectedIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	itemA := imageItem("1", "https://cdn.example/a.jpg")
	itemB := imageItem("2", "https://cdn.example/b.jpg")

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{itemA, itemB}, nil)

	f.instagram.EXPECT().DownloadMedia(ctx, itemA.Sources[0].URL).Return([]byte("a"), nil)
	f.ledger.EXPECT().BinaryRef(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().UploadMedia(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.MediaRef{ID: 10}, nil)
	f.ledger.EXPECT().RecordBinary(ctx, gomock.Any(), gomock.Any()).Return(nil)
	// Permanent rejection: exactly one attempt, no retries.
	f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).
		Return(0, apperrors.WrapKind(assert.AnError, apperrors.ErrSinkRejected, "create post")).
		Times(1)

	f.instagram.EXPECT().DownloadMedia(ctx, itemB.Sources[0].URL).Return([]byte("b"), nil)
	f.ledger.EXPECT().BinaryRef(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().UploadMedia(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.MediaRef{ID: 11}, nil)
	f.ledger.EXPECT().RecordBinary(ctx, gomock.Any(), gomock.Any()).Return(nil)
	f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(101, nil)
	f.ledger.EXPECT().RecordPost(ctx, "2", 101).Return(nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Synced)
	assert.Equal(t, 1, sum.Failed)
}

// Transient sink failures are retried within the run.
func TestRunRetriesTransientFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, gomock.Any()).Return([]byte("a"), nil)
	f.ledger.EXPECT().BinaryRef(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().UploadMedia(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.MediaRef{ID: 10}, nil)
	f.ledger.EXPECT().RecordBinary(ctx, gomock.Any(), gomock.Any()).Return(nil)

	gomock.InOrder(
		f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).
			Return(0, apperrors.WrapKind(assert.AnError, apperrors.ErrSinkUnavailable, "create post")),
		f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(100, nil),
	)
	f.ledger.EXPECT().RecordPost(ctx, "1", 100).Return(nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Synced)
}

// Nothing new and nothing pending: the second run makes no WordPress
// calls at all.
func TestRunIdempotentSecondPass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.instagram.EXPECT().FetchNewMedia(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, known instagram.KnownFunc) ([]domain.MediaItem, error) {
			// The reader consults the ledger and early-stops.
			seen, err := known(ctx, "1")
			require.NoError(t, err)
			require.True(t, seen)
			return nil, nil
		})
	f.ledger.EXPECT().HasMedia(gomock.Any(), "1").Return(true, nil)
	f.ledger.EXPECT().PendingMedia(ctx).Return(nil, nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{})
	require.NoError(t, err)
	assert.Zero(t, sum.Fetched)
	assert.Zero(t, sum.Synced)
}

// Dry run touches neither WordPress nor the ledger.
func TestRunDryRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")
	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true, DryRun: true})
	require.NoError(t, err)
	assert.Zero(t, sum.Synced)
	assert.Zero(t, sum.Failed)
}

// Dry run with the fetch phase enabled reports new items without
// staging them; re-running without the flag must still see them as new.
func TestRunDryRunDoesNotStageFetchedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fetched := imageItem("1", "https://cdn.example/a.jpg")
	f.instagram.EXPECT().FetchNewMedia(gomock.Any(), gomock.Any()).
		Return([]domain.MediaItem{fetched}, nil)
	f.ledger.EXPECT().PendingMedia(ctx).Return(nil, nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Fetched)
	assert.Zero(t, sum.Synced)
}

// A source failure aborts the run before anything is staged.
func TestRunSourceUnavailableAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.instagram.EXPECT().FetchNewMedia(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.WrapKind(assert.AnError, apperrors.ErrSourceUnavailable, "fetch media page"))

	_, err := f.syncer.Run(ctx, syncer.Options{})
	assert.True(t, apperrors.IsSourceUnavailable(err))
}

// A source failure during the post phase is fatal too: if the CDN is
// unreachable, later items cannot fare better.
func TestRunSourceFailureInPostPhaseAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	itemA := imageItem("1", "https://cdn.example/a.jpg")
	itemB := imageItem("2", "https://cdn.example/b.jpg")

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{itemA, itemB}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, itemA.Sources[0].URL).
		Return(nil, apperrors.WrapKind(assert.AnError, apperrors.ErrSourceUnavailable, "download media")).
		Times(2)

	_, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	assert.True(t, apperrors.IsSourceUnavailable(err))
}

// Ledger failures are fatal mid-run.
func TestRunLedgerFailureAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")
	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, gomock.Any()).Return([]byte("a"), nil)
	f.ledger.EXPECT().BinaryRef(ctx, gomock.Any()).
		Return(noRef(), false, apperrors.WrapKind(assert.AnError, apperrors.ErrLedgerIO, "binary ref"))

	_, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	assert.True(t, apperrors.IsLedgerIO(err))
}

// A crash-orphaned upload is recovered from the media library instead
// of being uploaded again.
func TestRunRecoversOrphanedUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")
	data := []byte("bytes")
	hash := hashOf(data)
	orphan := domain.MediaRef{ID: 33, SourceURL: "https://wp.example/orphan.jpg"}

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, gomock.Any()).Return(data, nil)
	f.ledger.EXPECT().BinaryRef(ctx, hash).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, "ig-"+hash[:12]).Return(orphan, true, nil)
	f.ledger.EXPECT().RecordBinary(ctx, hash, orphan).Return(nil)
	f.wordpress.EXPECT().CreatePost(ctx, gomock.Any()).Return(100, nil)
	f.ledger.EXPECT().RecordPost(ctx, "1", 100).Return(nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Synced)
	assert.Equal(t, 1, sum.SkippedBinaries)
}

// Tag resolution failures drop the tag, not the item.
func TestRunTagFailureDoesNotFailItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := imageItem("1", "https://cdn.example/a.jpg")
	item.Caption = "walk #good #bad"

	f.ledger.EXPECT().PendingMedia(ctx).Return([]domain.MediaItem{item}, nil)
	f.instagram.EXPECT().DownloadMedia(ctx, gomock.Any()).Return([]byte("a"), nil)
	f.ledger.EXPECT().BinaryRef(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().FindMedia(ctx, gomock.Any()).Return(noRef(), false, nil)
	f.wordpress.EXPECT().UploadMedia(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.MediaRef{ID: 10}, nil)
	f.ledger.EXPECT().RecordBinary(ctx, gomock.Any(), gomock.Any()).Return(nil)

	f.wordpress.EXPECT().EnsureTag(ctx, "#good").Return(3, nil)
	f.wordpress.EXPECT().EnsureTag(ctx, "#bad").
		Return(0, apperrors.WrapKind(assert.AnError, apperrors.ErrSinkRejected, "create tag"))

	f.wordpress.EXPECT().CreatePost(ctx, gomock.Cond(func(d domain.PostDraft) bool {
		return len(d.Tags) == 1 && d.Tags[0] == 3
	})).Return(100, nil)
	f.ledger.EXPECT().RecordPost(ctx, "1", 100).Return(nil)

	sum, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Synced)
}

// Reset-media clears the binary mappings before posting.
func TestRunResetMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.ledger.EXPECT().ResetBinaries(ctx).Return(int64(2), nil),
		f.ledger.EXPECT().PendingMedia(ctx).Return(nil, nil),
	)

	_, err := f.syncer.Run(ctx, syncer.Options{PostOnly: true, ResetMedia: true})
	require.NoError(t, err)
}
