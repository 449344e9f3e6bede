package ledger

import (
	"context"
	"errors"

	"github.com/ppetru/igsync/internal/domain"
)

var (
	ErrNotFound = errors.New("media not found in ledger")
)

// Repository is the dedup ledger: the single source of truth for "has
// this Instagram media been mirrored" and "has this binary been
// uploaded". Entries are created on success and never deleted by the
// tool, except ResetBinaries.
//
//go:generate go run go.uber.org/mock/mockgen -source=ledger.go -destination=mocks/mock.go -package=mocks
type Repository interface {
	// HasMedia reports whether the media ID is known to the ledger,
	// staged or already mirrored.
	HasMedia(ctx context.Context, id string) (bool, error)

	// StageMedia records a fetched item as pending. Idempotent: staging
	// the same item twice is a no-op.
	StageMedia(ctx context.Context, item domain.MediaItem) error

	// PendingMedia returns staged items not yet mirrored to WordPress,
	// oldest first.
	PendingMedia(ctx context.Context) ([]domain.MediaItem, error)

	// RecordPost marks an item as mirrored by the given WordPress post.
	RecordPost(ctx context.Context, mediaID string, wpPostID int) error

	// BinaryRef returns the WordPress media previously uploaded for the
	// given content hash, if any.
	BinaryRef(ctx context.Context, hash string) (domain.MediaRef, bool, error)

	// RecordBinary maps a content hash to an uploaded WordPress media.
	RecordBinary(ctx context.Context, hash string, ref domain.MediaRef) error

	// ResetBinaries clears all hash mappings, forcing re-uploads.
	ResetBinaries(ctx context.Context) (int64, error)
}
