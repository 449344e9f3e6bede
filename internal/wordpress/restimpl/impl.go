// Package restimpl implements the sink writer against the WordPress
// REST API (wp/v2).
package restimpl

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ppetru/igsync/internal/domain"
	"github.com/ppetru/igsync/internal/wordpress"
	"github.com/ppetru/igsync/pkg/config"
	apperrors "github.com/ppetru/igsync/pkg/errors"
	"github.com/ppetru/igsync/pkg/logger"
	"go.uber.org/fx"
)

type RestImpl struct {
	client *resty.Client
	logger logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *RestImpl {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.Config.WordPress.SiteURL, "/") + "/wp-json/wp/v2").
		SetTimeout(opts.Config.HTTP.Timeout).
		SetBasicAuth(opts.Config.WordPress.Username, opts.Config.WordPress.AppPassword)

	return &RestImpl{
		client: client,
		logger: opts.Logger.WithComponent("WordPressClient"),
	}
}

var _ wordpress.Client = (*RestImpl)(nil)

type mediaResponse struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

type tagResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type postResponse struct {
	ID int `json:"id"`
}

type postPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Slug          string `json:"slug"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Categories    []int  `json:"categories"`
	Tags          []int  `json:"tags,omitempty"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// classify maps an HTTP failure to the error taxonomy: network errors,
// 429 and 5xx are transient; any other 4xx is a payload or auth problem
// that retrying within the run cannot fix.
func classify(status int, op string) error {
	cause := fmt.Errorf("unexpected status %d", status)
	if status == http.StatusTooManyRequests || status >= 500 {
		return apperrors.WrapKind(cause, apperrors.ErrSinkUnavailable, op)
	}
	return apperrors.WrapKind(cause, apperrors.ErrSinkRejected, op)
}

func (w *RestImpl) UploadMedia(ctx context.Context, data []byte, filename, contentType string) (domain.MediaRef, error) {
	w.logger.Debug("Uploading media", "filename", filename, "bytes", len(data))

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename)).
		SetBody(data).
		SetResult(&mediaResponse{}).
		Post("/media")
	if err != nil {
		return domain.MediaRef{}, apperrors.WrapKind(err, apperrors.ErrSinkUnavailable, "upload media")
	}
	if resp.StatusCode() != http.StatusCreated {
		return domain.MediaRef{}, classify(resp.StatusCode(), "upload media")
	}

	body := resp.Result().(*mediaResponse)
	w.logger.Debug("Uploaded media", "wp_media_id", body.ID)
	return domain.MediaRef{ID: body.ID, SourceURL: body.SourceURL}, nil
}

func (w *RestImpl) FindMedia(ctx context.Context, search string) (domain.MediaRef, bool, error) {
	var results []mediaResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetQueryParam("search", search).
		SetQueryParam("per_page", "1").
		SetResult(&results).
		Get("/media")
	if err != nil {
		return domain.MediaRef{}, false, apperrors.WrapKind(err, apperrors.ErrSinkUnavailable, "find media")
	}
	if resp.IsError() {
		return domain.MediaRef{}, false, classify(resp.StatusCode(), "find media")
	}
	if len(results) == 0 {
		return domain.MediaRef{}, false, nil
	}
	return domain.MediaRef{ID: results[0].ID, SourceURL: results[0].SourceURL}, true, nil
}

func (w *RestImpl) CreatePost(ctx context.Context, draft domain.PostDraft) (int, error) {
	w.logger.Debug("Creating post", "title", draft.Title, "date", draft.Date)

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(postPayload{
			Title:         draft.Title,
			Content:       draft.Content,
			Slug:          draft.Slug,
			Status:        draft.Status,
			Date:          draft.Date,
			Categories:    draft.Categories,
			Tags:          draft.Tags,
			FeaturedMedia: draft.FeaturedMedia,
		}).
		SetResult(&postResponse{}).
		Post("/posts")
	if err != nil {
		return 0, apperrors.WrapKind(err, apperrors.ErrSinkUnavailable, "create post")
	}
	if resp.StatusCode() != http.StatusCreated {
		return 0, classify(resp.StatusCode(), "create post")
	}

	return resp.Result().(*postResponse).ID, nil
}

func (w *RestImpl) EnsureTag(ctx context.Context, name string) (int, error) {
	name = strings.TrimPrefix(name, "#")

	var found []tagResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetQueryParam("search", name).
		SetResult(&found).
		Get("/tags")
	if err != nil {
		return 0, apperrors.WrapKind(err, apperrors.ErrSinkUnavailable, "search tag")
	}
	if resp.IsError() {
		return 0, classify(resp.StatusCode(), "search tag")
	}
	for _, tag := range found {
		if strings.EqualFold(tag.Name, name) {
			return tag.ID, nil
		}
	}

	created := &tagResponse{}
	resp, err = w.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(created).
		Post("/tags")
	if err != nil {
		return 0, apperrors.WrapKind(err, apperrors.ErrSinkUnavailable, "create tag")
	}
	if resp.StatusCode() != http.StatusCreated {
		return 0, classify(resp.StatusCode(), "create tag")
	}

	return created.ID, nil
}
