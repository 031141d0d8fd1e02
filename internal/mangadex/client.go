package mangadex

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

	"github.com/antihax/optional"

	"animix-api/internal/apperr"
)

const provider = "mangadex"

// Client is the MangaDex REST client. Every listing is restricted to the
// configured content ratings and languages.
type Client struct {
	baseURL        string
	userAgent      string
	contentRatings []string
	languages      []string
	http           *http.Client
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	ContentRatings []string
	Languages      []string
}

// NewClient creates a new MangaDex API client.
func NewClient(opts Options) *Client {
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		userAgent:      opts.UserAgent,
		contentRatings: opts.ContentRatings,
		languages:      opts.Languages,
		http: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// MangaListOpts are the optional parameters of GET /manga. Order fields take
// "asc" or "desc".
type MangaListOpts struct {
	Limit              int
	Offset             int
	Title              optional.String
	OrderRating        optional.String
	OrderFollowedCount optional.String
	OrderRelevance     optional.String
}

// ChapterListOpts are the optional parameters of GET /chapter.
type ChapterListOpts struct {
	Limit           int
	Offset          optional.Int32
	Manga           optional.String
	Includes        []string
	OrderChapter    optional.String
	OrderReadableAt optional.String
}

// SearchManga lists manga with covers expanded.
func (c *Client) SearchManga(ctx context.Context, opts *MangaListOpts) (*MangaList, error) {
	q := url.Values{}
	q.Add("includes[]", RelCoverArt)
	c.addFilters(q, "availableTranslatedLanguage[]")

	if opts != nil {
		q.Set("limit", strconv.Itoa(opts.Limit))
		q.Set("offset", strconv.Itoa(opts.Offset))
		if opts.Title.IsSet() {
			q.Set("title", opts.Title.Value())
		}
		if opts.OrderRating.IsSet() {
			q.Set("order[rating]", opts.OrderRating.Value())
		}
		if opts.OrderFollowedCount.IsSet() {
			q.Set("order[followedCount]", opts.OrderFollowedCount.Value())
		}
		if opts.OrderRelevance.IsSet() {
			q.Set("order[relevance]", opts.OrderRelevance.Value())
		}
	}

	var result MangaList
	if err := c.get(ctx, "/manga", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetManga fetches one manga with its cover, authors and artists expanded.
func (c *Client) GetManga(ctx context.Context, id string) (*Manga, error) {
	q := url.Values{}
	for _, inc := range []string{RelCoverArt, RelAuthor, RelArtist} {
		q.Add("includes[]", inc)
	}

	var result MangaResponse
	if err := c.get(ctx, "/manga/"+url.PathEscape(id), q, &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		return nil, apperr.NotFound(provider, "manga %s", id)
	}
	return result.Data, nil
}

// ListChapters lists chapters in the configured languages.
func (c *Client) ListChapters(ctx context.Context, opts *ChapterListOpts) (*ChapterList, error) {
	q := url.Values{}
	c.addFilters(q, "translatedLanguage[]")

	if opts != nil {
		q.Set("limit", strconv.Itoa(opts.Limit))
		if opts.Offset.IsSet() {
			q.Set("offset", strconv.Itoa(int(opts.Offset.Value())))
		}
		if opts.Manga.IsSet() {
			q.Set("manga", opts.Manga.Value())
		}
		for _, inc := range opts.Includes {
			q.Add("includes[]", inc)
		}
		if opts.OrderChapter.IsSet() {
			q.Set("order[chapter]", opts.OrderChapter.Value())
		}
		if opts.OrderReadableAt.IsSet() {
			q.Set("order[readableAt]", opts.OrderReadableAt.Value())
		}
	}

	var result ChapterList
	if err := c.get(ctx, "/chapter", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Statistics fetches aggregate statistics for a batch of manga ids.
func (c *Client) Statistics(ctx context.Context, ids []string) (map[string]MangaStatistics, error) {
	q := url.Values{}
	for _, id := range ids {
		q.Add("manga[]", id)
	}

	var result StatisticsResponse
	if err := c.get(ctx, "/statistics/manga", q, &result); err != nil {
		return nil, err
	}
	return result.Statistics, nil
}

// AtHomeServer resolves the page delivery server of a chapter.
func (c *Client) AtHomeServer(ctx context.Context, chapterID string) (*AtHomeServer, error) {
	var result AtHomeServer
	if err := c.get(ctx, "/at-home/server/"+url.PathEscape(chapterID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) addFilters(q url.Values, languageKey string) {
	for _, rating := range c.contentRatings {
		q.Add("contentRating[]", rating)
	}
	for _, lang := range c.languages {
		q.Add(languageKey, lang)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	slog.Debug("fetching MangaDex", "url", endpoint)
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
