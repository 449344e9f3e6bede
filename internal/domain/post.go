package domain

// MediaRef points at a media object stored in the WordPress library.
type MediaRef struct {
	ID        int    // WordPress attachment ID
	SourceURL string // Public URL served by WordPress
}

// PostDraft is a WordPress post payload ready to be created. Drafts are
// built by the mapper and never mutated after creation.
type PostDraft struct {
	Title         string
	Slug          string
	Content       string // Gutenberg block markup
	Status        string
	Date          string // RFC3339, original timezone offset preserved
	Categories    []int
	Tags          []int
	FeaturedMedia int // 0 means no featured image
}
