package instagram

import (
	"context"

	"github.com/ppetru/igsync/internal/domain"
)

// KnownFunc reports whether a media ID has already been recorded. The
// reader uses it to stop paging as soon as it reaches synced history.
type KnownFunc func(ctx context.Context, id string) (bool, error)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go -package=mocks
type Client interface {
	// FetchNewMedia pages through the account feed, newest first, and
	// returns every item up to (excluding) the first known one. The
	// feed is reverse-chronological, so everything past that point has
	// been seen before.
	FetchNewMedia(ctx context.Context, known KnownFunc) ([]domain.MediaItem, error)

	// DownloadMedia fetches a media binary from its CDN URL.
	DownloadMedia(ctx context.Context, url string) ([]byte, error)
}
