package domain

import "time"

type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

// MediaItem is a single Instagram media post as returned by the Graph
// API. Immutable once fetched; the tool never creates these locally.
type MediaItem struct {
	ID        string        // Media ID assigned by Instagram
	Caption   string        // Caption text, may contain hashtags
	MediaType MediaType     // IMAGE, VIDEO or CAROUSEL_ALBUM
	Permalink string        // Public URL of the post
	Timestamp time.Time     // Original publish time, offset preserved
	Sources   []MediaSource // Ordered media binaries, one per carousel child
}

// MediaSource is one downloadable binary belonging to a MediaItem. A
// non-carousel item has exactly one source whose ID equals the item ID.
type MediaSource struct {
	ID        string
	MediaType MediaType
	URL       string
}

// Extension returns the file extension matching the source media type.
func (s MediaSource) Extension() string {
	if s.MediaType == MediaTypeVideo {
		return ".mp4"
	}
	return ".jpg"
}

// ContentType returns the MIME type matching the source media type.
func (s MediaSource) ContentType() string {
	if s.MediaType == MediaTypeVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}
