package jikan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animix-api/internal/apperr"
)

func TestClientRequests(t *testing.T) {
	tests := []struct {
		name      string
		call      func(c *Client) error
		wantPath  string
		wantQuery string
	}{
		{
			name:      "top anime",
			call:      func(c *Client) error { _, err := c.TopAnime(context.Background(), 2, 20); return err },
			wantPath:  "/top/anime",
			wantQuery: "limit=20&page=2",
		},
		{
			name:      "current season",
			call:      func(c *Client) error { _, err := c.CurrentSeason(context.Background(), 1); return err },
			wantPath:  "/seasons/now",
			wantQuery: "page=1",
		},
		{
			name:      "season by year",
			call:      func(c *Client) error { _, err := c.Season(context.Background(), 2024, "fall", 3); return err },
			wantPath:  "/seasons/2024/fall",
			wantQuery: "page=3",
		},
		{
			name:      "schedule with day",
			call:      func(c *Client) error { _, err := c.Schedules(context.Background(), "Monday"); return err },
			wantPath:  "/schedules",
			wantQuery: "filter=monday",
		},
		{
			name:      "schedule without day",
			call:      func(c *Client) error { _, err := c.Schedules(context.Background(), ""); return err },
			wantPath:  "/schedules",
			wantQuery: "",
		},
		{
			name:      "episodes",
			call:      func(c *Client) error { _, err := c.Episodes(context.Background(), 20, 2); return err },
			wantPath:  "/anime/20/episodes",
			wantQuery: "page=2",
		},
		{
			name:     "recommendations",
			call:     func(c *Client) error { _, err := c.Recommendations(context.Background(), 20); return err },
			wantPath: "/anime/20/recommendations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
				_, _ = w.Write([]byte(`{"data":[],"pagination":{"has_next_page":false}}`))
			}))
			defer srv.Close()

			if err := tt.call(NewClient(srv.URL, 5*time.Second, "")); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQuery)
			}
		})
	}
}

func TestAnimeFullDecodesNullableFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{
			"mal_id":1535,"title":"Death Note","title_english":null,"score":8.62,"rank":null,
			"broadcast":{"day":"Tuesdays","time":"00:56","timezone":"Asia/Tokyo","string":"Tuesdays at 00:56 (JST)"},
			"producers":[{"mal_id":29,"type":"anime","name":"VAP","url":""}],
			"streaming":[{"name":"Netflix","url":"https://www.netflix.com"}]
		}}`))
	}))
	defer srv.Close()

	anime, err := NewClient(srv.URL, 5*time.Second, "").AnimeFull(context.Background(), 1535)
	if err != nil {
		t.Fatalf("AnimeFull() error = %v", err)
	}
	if anime.TitleEnglish != nil {
		t.Errorf("TitleEnglish = %v, want nil", *anime.TitleEnglish)
	}
	if anime.Rank != nil {
		t.Errorf("Rank = %v, want nil", *anime.Rank)
	}
	if anime.Score == nil || *anime.Score != 8.62 {
		t.Errorf("Score = %v, want 8.62", anime.Score)
	}
	if anime.Broadcast == nil || anime.Broadcast.Day == nil || *anime.Broadcast.Day != "Tuesdays" {
		t.Errorf("Broadcast = %+v, want day Tuesdays", anime.Broadcast)
	}
	if len(anime.Streaming) != 1 || len(anime.Producers) != 1 {
		t.Errorf("Streaming/Producers = %d/%d, want 1/1", len(anime.Streaming), len(anime.Producers))
	}
}

func TestClientErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperr.Kind
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"status":404}`, want: apperr.KindNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"status":429}`, want: apperr.KindUpstream},
		{name: "bad payload", status: http.StatusOK, body: `{"data":`, want: apperr.KindUpstream},
		{name: "empty data", status: http.StatusOK, body: `{"data":null}`, want: apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, 5*time.Second, "").AnimeFull(context.Background(), 1)
			if got := apperr.KindOf(err); got != tt.want {
				t.Errorf("AnimeFull() error kind = %v, want %v (err: %v)", got, tt.want, err)
			}
		})
	}
}
