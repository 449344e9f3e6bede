// Package graphimpl implements the source reader against the Instagram
// Graph API using bearer-token authentication.
package graphimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ppetru/igsync/internal/domain"
	"github.com/ppetru/igsync/internal/instagram"
	"github.com/ppetru/igsync/pkg/config"
	apperrors "github.com/ppetru/igsync/pkg/errors"
	"github.com/ppetru/igsync/pkg/logger"
	"go.uber.org/fx"
)

const mediaFields = "id,caption,media_type,media_url,permalink,timestamp"

// The Graph API renders offsets without a colon.
const graphTimeLayout = "2006-01-02T15:04:05-0700"

type GraphImpl struct {
	client      *resty.Client
	accessToken string
	logger      logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *GraphImpl {
	client := resty.New().
		SetBaseURL(opts.Config.Instagram.GraphURL).
		SetTimeout(opts.Config.HTTP.Timeout)

	return &GraphImpl{
		client:      client,
		accessToken: opts.Config.Instagram.AccessToken,
		logger:      opts.Logger.WithComponent("InstagramClient"),
	}
}

var _ instagram.Client = (*GraphImpl)(nil)

type mediaObject struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
}

type mediaPage struct {
	Data   []mediaObject `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (g *GraphImpl) FetchNewMedia(ctx context.Context, known instagram.KnownFunc) ([]domain.MediaItem, error) {
	var items []domain.MediaItem

	next := ""
	page := 1
	for {
		g.logger.Debug("Fetching media page", "page", page)

		body, err := g.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}

		for _, obj := range body.Data {
			seen, err := known(ctx, obj.ID)
			if err != nil {
				return nil, err
			}
			if seen {
				// Everything older has been mirrored already.
				g.logger.Debug("Reached known media, stopping", "media_id", obj.ID, "pages", page)
				return items, nil
			}

			item, err := g.toItem(ctx, obj)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		if body.Paging.Next == "" {
			break
		}
		next = body.Paging.Next
		page++
	}

	g.logger.Info("Fetched new media", "count", len(items), "pages", page)
	return items, nil
}

func (g *GraphImpl) fetchPage(ctx context.Context, next string) (*mediaPage, error) {
	req := g.client.R().
		SetContext(ctx).
		SetResult(&mediaPage{})

	var resp *resty.Response
	var err error
	if next == "" {
		resp, err = req.
			SetQueryParam("fields", mediaFields).
			SetQueryParam("access_token", g.accessToken).
			Get("/me/media")
	} else {
		// paging.next is an absolute URL that carries the token.
		resp, err = req.Get(next)
	}
	if err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrSourceUnavailable, "fetch media page")
	}
	if resp.IsError() {
		return nil, apperrors.WrapKind(
			fmt.Errorf("unexpected status %d", resp.StatusCode()),
			apperrors.ErrSourceUnavailable, "fetch media page",
		)
	}

	body, ok := resp.Result().(*mediaPage)
	if !ok {
		return nil, apperrors.WrapKind(nil, apperrors.ErrSourceUnavailable, "decode media page")
	}
	return body, nil
}

func (g *GraphImpl) toItem(ctx context.Context, obj mediaObject) (domain.MediaItem, error) {
	item := domain.MediaItem{
		ID:        obj.ID,
		Caption:   obj.Caption,
		MediaType: domain.MediaType(obj.MediaType),
		Permalink: obj.Permalink,
	}

	ts, err := parseTimestamp(obj.Timestamp)
	if err != nil {
		return domain.MediaItem{}, apperrors.WrapKind(err, apperrors.ErrSourceUnavailable, "parse media timestamp")
	}
	item.Timestamp = ts

	if item.MediaType == domain.MediaTypeCarousel {
		children, err := g.fetchChildren(ctx, obj.ID)
		if err != nil {
			return domain.MediaItem{}, err
		}
		item.Sources = children
	} else {
		item.Sources = []domain.MediaSource{{
			ID:        obj.ID,
			MediaType: item.MediaType,
			URL:       obj.MediaURL,
		}}
	}

	return item, nil
}

func (g *GraphImpl) fetchChildren(ctx context.Context, mediaID string) ([]domain.MediaSource, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("fields", "id,media_type,media_url").
		SetQueryParam("access_token", g.accessToken).
		SetResult(&mediaPage{}).
		Get("/" + mediaID + "/children")
	if err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrSourceUnavailable, "fetch carousel children")
	}
	if resp.IsError() {
		return nil, apperrors.WrapKind(
			fmt.Errorf("unexpected status %d", resp.StatusCode()),
			apperrors.ErrSourceUnavailable, "fetch carousel children",
		)
	}

	body := resp.Result().(*mediaPage)
	sources := make([]domain.MediaSource, 0, len(body.Data))
	for _, child := range body.Data {
		sources = append(sources, domain.MediaSource{
			ID:        child.ID,
			MediaType: domain.MediaType(child.MediaType),
			URL:       child.MediaURL,
		})
	}
	return sources, nil
}

func (g *GraphImpl) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrSourceUnavailable, "download media")
	}
	if resp.IsError() {
		return nil, apperrors.WrapKind(
			fmt.Errorf("unexpected status %d", resp.StatusCode()),
			apperrors.ErrSourceUnavailable, "download media",
		)
	}
	return resp.Body(), nil
}

func parseTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(graphTimeLayout, raw)
	if err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, raw)
}
