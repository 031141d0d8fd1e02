package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animix-api/internal/apperr"
)

const provider = "jikan"

// Client is the Jikan REST client.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a new Jikan API client.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// TopAnime fetches the /top/anime listing.
func (c *Client) TopAnime(ctx context.Context, page, limit int) (*AnimeListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var result AnimeListResponse
	if err := c.get(ctx, "/top/anime", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentSeason fetches the anime airing this season.
func (c *Client) CurrentSeason(ctx context.Context, page int) (*AnimeListResponse, error) {
	var result AnimeListResponse
	if err := c.get(ctx, "/seasons/now", pageQuery(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Season fetches the anime of one year and season name.
func (c *Client) Season(ctx context.Context, year int, season string, page int) (*AnimeListResponse, error) {
	path := fmt.Sprintf("/seasons/%d/%s", year, url.PathEscape(season))

	var result AnimeListResponse
	if err := c.get(ctx, path, pageQuery(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Schedules fetches the broadcast schedule. A non-empty day is sent as the
// lowercase weekday filter.
func (c *Client) Schedules(ctx context.Context, day string) (*AnimeListResponse, error) {
	q := url.Values{}
	if day != "" {
		q.Set("filter", strings.ToLower(day))
	}

	var result AnimeListResponse
	if err := c.get(ctx, "/schedules", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnimeFull fetches the full record of one anime by its MAL id.
func (c *Client) AnimeFull(ctx context.Context, malID int) (*Anime, error) {
	var result AnimeResponse
	if err := c.get(ctx, fmt.Sprintf("/anime/%d/full", malID), nil, &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		return nil, apperr.NotFound(provider, "anime %d", malID)
	}
	return result.Data, nil
}

// Episodes fetches one page of episodes of an anime.
func (c *Client) Episodes(ctx context.Context, malID, page int) (*EpisodeListResponse, error) {
	var result EpisodeListResponse
	if err := c.get(ctx, fmt.Sprintf("/anime/%d/episodes", malID), pageQuery(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recommendations fetches the user recommendations of an anime.
func (c *Client) Recommendations(ctx context.Context, malID int) ([]RecommendationEntry, error) {
	var result RecommendationsResponse
	if err := c.get(ctx, fmt.Sprintf("/anime/%d/recommendations", malID), nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	slog.Debug("fetching Jikan", "url", endpoint)
	resp, err := c.doGet(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream(provider, "decode "+path, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Upstream(provider, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstream(provider, "HTTP request failed", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, apperr.NotFound(provider, "%s", req.URL.Path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, apperr.Upstream(provider, fmt.Sprintf("status %d", resp.StatusCode), errors.New(string(body)))
	}
	return resp, nil
}
