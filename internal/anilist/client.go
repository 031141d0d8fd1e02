package anilist

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	"animix-api/internal/apperr"
)

const provider = "anilist"

// Client is the AniList GraphQL client. Every query is built from the typed
// selection sets in types.go.
type Client struct {
	gql *graphql.Client
}

// NewClient creates a new AniList client with its own HTTP timeout.
func NewClient(endpoint string, timeout time.Duration, userAgent string) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{userAgent: userAgent, base: http.DefaultTransport},
	}
	return &Client{gql: graphql.NewClient(endpoint, httpClient)}
}

// MediaFilter narrows a media page. Zero-valued fields are sent as null
// variables, which AniList treats as "no filter".
type MediaFilter struct {
	Search string
	IDs    []int
	Sort   []MediaSort
	Status MediaStatus
}

func (f MediaFilter) variables(page, perPage int) map[string]any {
	vars := map[string]any{
		"page":    graphql.Int(page),
		"perPage": graphql.Int(perPage),
		"search":  (*graphql.String)(nil),
		"ids":     (*[]graphql.Int)(nil),
		"sort":    (*[]MediaSort)(nil),
		"status":  (*MediaStatus)(nil),
	}
	if f.Search != "" {
		search := graphql.String(f.Search)
		vars["search"] = &search
	}
	if len(f.IDs) > 0 {
		ids := make([]graphql.Int, len(f.IDs))
		for i, id := range f.IDs {
			ids[i] = graphql.Int(id)
		}
		vars["ids"] = &ids
	}
	if len(f.Sort) > 0 {
		sort := append([]MediaSort(nil), f.Sort...)
		vars["sort"] = &sort
	}
	if f.Status != "" {
		status := f.Status
		vars["status"] = &status
	}
	return vars
}

// AiringWindow bounds an airing schedule query by unix time. A zero bound is
// left open.
type AiringWindow struct {
	After  time.Time
	Before time.Time
}

func (w AiringWindow) variables(page, perPage int) map[string]any {
	vars := map[string]any{
		"page":         graphql.Int(page),
		"perPage":      graphql.Int(perPage),
		"airingAfter":  (*graphql.Int)(nil),
		"airingBefore": (*graphql.Int)(nil),
	}
	if !w.After.IsZero() {
		after := graphql.Int(w.After.Unix())
		vars["airingAfter"] = &after
	}
	if !w.Before.IsZero() {
		before := graphql.Int(w.Before.Unix())
		vars["airingBefore"] = &before
	}
	return vars
}

// MediaPage fetches one page of anime matching filter.
func (c *Client) MediaPage(ctx context.Context, filter MediaFilter, page, perPage int) (*MediaPage, error) {
	var q mediaPageQuery
	slog.Debug("querying AniList media page", "search", filter.Search, "ids", len(filter.IDs), "page", page)
	if err := c.query(ctx, "media page", &q, filter.variables(page, perPage)); err != nil {
		return nil, err
	}
	return &q.Page, nil
}

// Media fetches the full detail record of one anime.
func (c *Client) Media(ctx context.Context, id int) (*MediaDetail, error) {
	var q mediaQuery
	slog.Debug("querying AniList media detail", "anilist_id", id)
	if err := c.query(ctx, "media detail", &q, map[string]any{"id": graphql.Int(id)}); err != nil {
		return nil, err
	}
	if q.Media == nil {
		return nil, apperr.NotFound(provider, "anime %d", id)
	}
	return q.Media, nil
}

// AiringSchedules fetches one page of airing schedule entries inside window,
// newest first.
func (c *Client) AiringSchedules(ctx context.Context, window AiringWindow, page, perPage int) (*AiringPage, error) {
	var q airingPageQuery
	slog.Debug("querying AniList airing schedules", "after", window.After, "before", window.Before)
	if err := c.query(ctx, "airing schedules", &q, window.variables(page, perPage)); err != nil {
		return nil, err
	}
	return &q.Page, nil
}

func (c *Client) query(ctx context.Context, what string, q any, vars map[string]any) error {
	err := c.gql.Query(ctx, q, vars)
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "status code: 404") {
		return apperr.NotFound(provider, "%s", what)
	}
	return apperr.Upstream(provider, what, err)
}

type headerTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
