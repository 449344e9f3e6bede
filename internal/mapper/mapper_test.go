package mapper_test

import (
	"testing"
	"time"

	"github.com/ppetru/igsync/internal/domain"
	"github.com/ppetru/igsync/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{"no tags", "just a caption", nil},
		{"single tag", "sunset #nofilter", []string{"#nofilter"}},
		{"multiple tags", "#travel day out #sunset #nofilter", []string{"#travel", "#sunset", "#nofilter"}},
		{"tag with digits", "see #day100", []string{"#day100"}},
		{"empty caption", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.ExtractTags(tt.caption))
		})
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "sunset over the bay", mapper.StripTags("sunset over the bay #nofilter #sunset"))
	assert.Equal(t, "", mapper.StripTags("#only #tags"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "First line", mapper.Title("First line\nsecond line"))
	assert.Equal(t, "Single line", mapper.Title("Single line"))
	assert.Equal(t, "Untitled", mapper.Title(""))
	assert.Equal(t, "Untitled", mapper.Title("\nstarts with newline"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "photo-sunset-over-the-bay", mapper.Slug("Sunset over the Bay!"))
}

func TestFormatCaption(t *testing.T) {
	got := mapper.FormatCaption("First line #tag\n\nSecond line")
	assert.Equal(t,
		"<!-- wp:paragraph --><p>First line</p><!-- /wp:paragraph -->"+
			"<!-- wp:paragraph --><p>Second line</p><!-- /wp:paragraph -->",
		got)

	assert.Empty(t, mapper.FormatCaption("#only #tags"))
}

func TestBuildContentExcludesFeatured(t *testing.T) {
	attachments := []mapper.Attachment{
		{
			Source: domain.MediaSource{ID: "a", MediaType: domain.MediaTypeImage},
			Ref:    domain.MediaRef{ID: 10, SourceURL: "https://wp.example/a.jpg"},
		},
		{
			Source: domain.MediaSource{ID: "b", MediaType: domain.MediaTypeVideo},
			Ref:    domain.MediaRef{ID: 11, SourceURL: "https://wp.example/b.mp4"},
		},
	}

	got := mapper.BuildContent(attachments, "caption", 10)
	assert.NotContains(t, got, "wp-image-10")
	assert.Contains(t, got, `<!-- wp:video {"id":11} -->`)
	assert.Contains(t, got, "https://wp.example/b.mp4")
	assert.Contains(t, got, "<p>caption</p>")
}

func TestDraft(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2023-05-01T10:00:00+02:00")
	require.NoError(t, err)

	item := domain.MediaItem{
		ID:        "17890",
		Caption:   "Morning walk #sunrise\nBy the river",
		MediaType: domain.MediaTypeCarousel,
		Timestamp: ts,
	}
	attachments := []mapper.Attachment{
		{
			Source: domain.MediaSource{ID: "v1", MediaType: domain.MediaTypeVideo},
			Ref:    domain.MediaRef{ID: 20, SourceURL: "https://wp.example/v1.mp4"},
		},
		{
			Source: domain.MediaSource{ID: "i1", MediaType: domain.MediaTypeImage},
			Ref:    domain.MediaRef{ID: 21, SourceURL: "https://wp.example/i1.jpg"},
		},
	}

	draft := mapper.Draft(item, 7, []int{3, 4}, attachments)

	assert.Equal(t, "Morning walk #sunrise", draft.Title)
	assert.Equal(t, "photo-morning-walk-sunrise", draft.Slug)
	assert.Equal(t, "publish", draft.Status)
	// The original timezone offset must survive the round-trip.
	assert.Equal(t, "2023-05-01T10:00:00+02:00", draft.Date)
	assert.Equal(t, []int{7}, draft.Categories)
	assert.Equal(t, []int{3, 4}, draft.Tags)
	// First image is featured, even when a video comes before it.
	assert.Equal(t, 21, draft.FeaturedMedia)
	assert.Contains(t, draft.Content, `<!-- wp:video {"id":20} -->`)
	assert.NotContains(t, draft.Content, "wp-image-21")
	assert.Contains(t, draft.Content, "<p>By the river</p>")
	assert.NotContains(t, draft.Content, "#sunrise")
}

func TestDraftNoMedia(t *testing.T) {
	item := domain.MediaItem{ID: "1", Caption: "", Timestamp: time.Unix(0, 0).UTC()}

	draft := mapper.Draft(item, 7, nil, nil)

	assert.Equal(t, "Untitled", draft.Title)
	assert.Zero(t, draft.FeaturedMedia)
	assert.Empty(t, draft.Content)
}
