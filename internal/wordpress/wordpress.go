package wordpress

import (
	"context"

	"github.com/ppetru/igsync/internal/domain"
)

// Client is the sink side of the mirror: the WordPress REST API,
// authenticated with a username and application password.
//
//go:generate go run go.uber.org/mock/mockgen -source=wordpress.go -destination=mocks/mock.go -package=mocks
type Client interface {
	// UploadMedia uploads a binary to the media library.
	UploadMedia(ctx context.Context, data []byte, filename, contentType string) (domain.MediaRef, error)

	// FindMedia searches the media library and returns the first match,
	// if any. Used to recover hash mappings lost to a crash between a
	// successful upload and the ledger write.
	FindMedia(ctx context.Context, search string) (domain.MediaRef, bool, error)

	// CreatePost publishes a post and returns its WordPress ID.
	CreatePost(ctx context.Context, draft domain.PostDraft) (int, error)

	// EnsureTag returns the ID of the named tag, creating it if needed.
	EnsureTag(ctx context.Context, name string) (int, error)
}
