// Package mapper turns Instagram media items into WordPress post
// drafts. Hashtags are promoted to WordPress tag taxonomy terms and
// stripped from the body; the caption becomes Gutenberg paragraph
// blocks preceded by image/video blocks for every attachment except
// the featured one.
package mapper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/ppetru/igsync/internal/domain"
)

var hashtagRe = regexp.MustCompile(`#\w+`)

// Attachment pairs a source binary with the WordPress media it became.
type Attachment struct {
	Source domain.MediaSource
	Ref    domain.MediaRef
}

// ExtractTags returns hashtags from a caption, '#' included, in order
// of appearance.
func ExtractTags(caption string) []string {
	return hashtagRe.FindAllString(caption, -1)
}

// StripTags removes hashtags from a caption.
func StripTags(caption string) string {
	return strings.TrimSpace(hashtagRe.ReplaceAllString(caption, ""))
}

// Title derives the post title: the first caption line, or "Untitled".
func Title(caption string) string {
	title := caption
	if idx := strings.Index(caption, "\n"); idx >= 0 {
		title = caption[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "Untitled"
	}
	return title
}

// Slug derives a deterministic post slug from the title.
func Slug(title string) string {
	return slug.Make("photo " + title)
}

// FormatCaption renders the tag-stripped caption as Gutenberg
// paragraph blocks, one per non-empty line.
func FormatCaption(caption string) string {
	var sb strings.Builder
	for _, line := range strings.Split(StripTags(caption), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString("<!-- wp:paragraph --><p>")
		sb.WriteString(line)
		sb.WriteString("</p><!-- /wp:paragraph -->")
	}
	return sb.String()
}

// FeaturedMedia returns the attachment to use as the featured image:
// the first image, or nothing for video-only posts.
func FeaturedMedia(attachments []Attachment) (Attachment, bool) {
	for _, att := range attachments {
		if att.Source.MediaType == domain.MediaTypeImage {
			return att, true
		}
	}
	return Attachment{}, false
}

// BuildContent renders the post body: media blocks for every
// attachment except the featured one, then the caption paragraphs.
func BuildContent(attachments []Attachment, caption string, featuredID int) string {
	var sb strings.Builder
	for _, att := range attachments {
		if att.Ref.ID == featuredID {
			continue
		}
		switch att.Source.MediaType {
		case domain.MediaTypeVideo:
			sb.WriteString(fmt.Sprintf(
				`<!-- wp:video {"id":%d} --><figure class="wp-block-video"><video controls src="%s"></video></figure><!-- /wp:video -->`,
				att.Ref.ID, att.Ref.SourceURL,
			))
		default:
			sb.WriteString(fmt.Sprintf(
				`<!-- wp:image {"id":%d} --><figure class="wp-block-image"><img src="%s" alt="" class="wp-image-%d"/></figure><!-- /wp:image -->`,
				att.Ref.ID, att.Ref.SourceURL, att.Ref.ID,
			))
		}
	}
	sb.WriteString(FormatCaption(caption))
	return sb.String()
}

// Draft assembles the full WordPress post payload for a media item.
// All media must already exist on the WordPress side.
func Draft(item domain.MediaItem, categoryID int, tagIDs []int, attachments []Attachment) domain.PostDraft {
	title := Title(item.Caption)

	featuredID := 0
	if featured, ok := FeaturedMedia(attachments); ok {
		featuredID = featured.Ref.ID
	}

	return domain.PostDraft{
		Title:         title,
		Slug:          Slug(title),
		Content:       BuildContent(attachments, item.Caption, featuredID),
		Status:        "publish",
		Date:          item.Timestamp.Format(time.RFC3339),
		Categories:    []int{categoryID},
		Tags:          tagIDs,
		FeaturedMedia: featuredID,
	}
}
