package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"animix-api/internal/apperr"
	"animix-api/internal/models"
)

type stubAnime struct {
	err       error
	gotParams models.TopAnimeParams
	gotSearch models.SearchParams
	gotMalID  int
	gotFamous []int
	gotSeason string
	gotYear   int
	gotDay    string
	gotEpPage int
}

func (s *stubAnime) TopAnime(_ context.Context, p models.TopAnimeParams) (*models.AnimeList, error) {
	s.gotParams = p
	return &models.AnimeList{Results: []models.Anime{}}, s.err
}

func (s *stubAnime) CurrentSeasonAnime(context.Context, int) (*models.AnimeList, error) {
	return &models.AnimeList{}, s.err
}

func (s *stubAnime) SeasonalAnime(_ context.Context, year int, season string, _ int) (*models.AnimeList, error) {
	s.gotYear, s.gotSeason = year, season
	return &models.AnimeList{}, s.err
}

func (s *stubAnime) AnimeSchedule(_ context.Context, day string) (*models.Schedule, error) {
	s.gotDay = day
	return &models.Schedule{}, s.err
}

func (s *stubAnime) SearchAnime(_ context.Context, p models.SearchParams) (*models.AnimeList, error) {
	s.gotSearch = p
	return &models.AnimeList{}, s.err
}

func (s *stubAnime) AnimeByID(context.Context, string) (*models.AnimeDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.AnimeDetail{}, nil
}

func (s *stubAnime) AnimeEpisodes(_ context.Context, malID, page int) (*models.EpisodeList, error) {
	s.gotMalID, s.gotEpPage = malID, page
	return &models.EpisodeList{}, s.err
}

func (s *stubAnime) AnimeRecommendations(_ context.Context, malID int) []models.Recommendation {
	s.gotMalID = malID
	return []models.Recommendation{}
}

func (s *stubAnime) FamousAnimeByIDs(_ context.Context, ids []int) []models.Anime {
	s.gotFamous = ids
	return []models.Anime{{ID: "20", Title: "Naruto"}}
}

func (s *stubAnime) TopEpisodesOfWeek(context.Context) *models.WeeklyEpisodes {
	return &models.WeeklyEpisodes{Results: []models.WeeklyEpisode{}}
}

type stubManga struct {
	err       error
	gotParams models.MangaListParams
	gotID     string
	gotLimit  int
}

func (s *stubManga) Trending(_ context.Context, p models.MangaListParams) (*models.MangaPage, error) {
	s.gotParams = p
	return &models.MangaPage{Results: []models.Manga{}}, s.err
}

func (s *stubManga) Popular(_ context.Context, p models.MangaListParams) (*models.MangaPage, error) {
	s.gotParams = p
	return &models.MangaPage{Results: []models.Manga{}}, s.err
}

func (s *stubManga) Search(_ context.Context, p models.MangaListParams) (*models.MangaPage, error) {
	s.gotParams = p
	return &models.MangaPage{Results: []models.Manga{}}, s.err
}

func (s *stubManga) MangaDetails(_ context.Context, id string) (*models.MangaDetail, error) {
	s.gotID = id
	return &models.MangaDetail{}, s.err
}

func (s *stubManga) MangaChapters(_ context.Context, id string, _, limit int) (*models.ChapterPage, error) {
	s.gotID, s.gotLimit = id, limit
	return &models.ChapterPage{}, s.err
}

func (s *stubManga) LatestChapters(_ context.Context, limit int) (*models.LatestChapters, error) {
	s.gotLimit = limit
	return &models.LatestChapters{}, s.err
}

func (s *stubManga) ChapterPages(_ context.Context, id string) (*models.ChapterPages, error) {
	s.gotID = id
	return &models.ChapterPages{}, s.err
}

func newTestApp(anime AnimeService, manga MangaService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", Root)
	api := app.Group("/api")
	api.Get("/health", Health)
	NewAnimeHandler(anime, []int{20, 21}).Register(api.Group("/anime"))
	NewMangaHandler(manga).Register(api)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad"), fiber.StatusBadRequest},
		{"not found", apperr.NotFound("anilist", "media 1"), fiber.StatusNotFound},
		{"upstream", apperr.Upstream("jikan", "status 500", nil), fiber.StatusBadGateway},
		{"other", context.DeadlineExceeded, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		path       string
		wantStatus int
	}{
		{"anime validation", apperr.Validation("search query is required"), "/api/anime/search", fiber.StatusBadRequest},
		{"anime not found", apperr.NotFound("anilist", "media 9"), "/api/anime/9", fiber.StatusNotFound},
		{"anime upstream", apperr.Upstream("anilist", "status 500", nil), "/api/anime/top", fiber.StatusBadGateway},
		{"manga validation", apperr.Validation("invalid manga id"), "/api/manga/abc", fiber.StatusBadRequest},
		{"chapter pages not found", apperr.NotFound("mangadex", "pages"), "/api/chapters/abc/pages", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubAnime{err: tt.err}, &stubManga{err: tt.err})
			status, body := get(t, app, tt.path)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", status, tt.wantStatus, body)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error == "" || resp.Message != tt.err.Error() {
				t.Errorf("body = %+v", resp)
			}
		})
	}
}

func TestAnimeRoutes(t *testing.T) {
	anime := &stubAnime{}
	app := newTestApp(anime, &stubManga{})

	if status, _ := get(t, app, "/api/anime/top?filter=upcoming&page=3&limit=5"); status != fiber.StatusOK {
		t.Fatalf("top status = %d", status)
	}
	if anime.gotParams.Filter != "upcoming" || anime.gotParams.Page != 3 || anime.gotParams.Limit != 5 {
		t.Errorf("top params = %+v", anime.gotParams)
	}

	get(t, app, "/api/anime/search?q=bebop")
	if anime.gotSearch.Query != "bebop" {
		t.Errorf("search params = %+v", anime.gotSearch)
	}

	get(t, app, "/api/anime/season/2023/fall")
	if anime.gotYear != 2023 || anime.gotSeason != "fall" {
		t.Errorf("season = %d %s", anime.gotYear, anime.gotSeason)
	}
	if status, _ := get(t, app, "/api/anime/season/next/fall"); status != fiber.StatusBadRequest {
		t.Errorf("non-numeric year status = %d", status)
	}

	get(t, app, "/api/anime/schedule?day=Monday")
	if anime.gotDay != "Monday" {
		t.Errorf("day = %q", anime.gotDay)
	}

	get(t, app, "/api/anime/21/episodes?page=2")
	if anime.gotMalID != 21 || anime.gotEpPage != 2 {
		t.Errorf("episodes malID, page = %d, %d", anime.gotMalID, anime.gotEpPage)
	}
	get(t, app, "/api/anime/21/episodes?malId=1735")
	if anime.gotMalID != 1735 {
		t.Errorf("episodes malID = %d, want query value", anime.gotMalID)
	}

	status, body := get(t, app, "/api/anime/famous")
	if status != fiber.StatusOK {
		t.Fatalf("famous status = %d", status)
	}
	var famous struct {
		Results []models.Anime `json:"results"`
	}
	if err := json.Unmarshal(body, &famous); err != nil || len(famous.Results) != 1 {
		t.Errorf("famous body = %s", body)
	}
	if len(anime.gotFamous) != 2 {
		t.Errorf("famous ids = %v", anime.gotFamous)
	}

	status, body = get(t, app, "/api/anime/5/recommendations")
	if status != fiber.StatusOK || string(body) != `{"results":[]}` {
		t.Errorf("recommendations = %d %s", status, body)
	}

	if status, _ := get(t, app, "/api/anime/episodes/weekly-top"); status != fiber.StatusOK {
		t.Errorf("weekly top status = %d", status)
	}
}

func TestMangaRoutes(t *testing.T) {
	manga := &stubManga{}
	app := newTestApp(&stubAnime{}, manga)

	get(t, app, "/api/manga/search?query=berserk&page=2&limit=5")
	if manga.gotParams.Query != "berserk" || manga.gotParams.Page != 2 || manga.gotParams.Limit != 5 {
		t.Errorf("search params = %+v", manga.gotParams)
	}

	get(t, app, "/api/manga/latest?limit=7")
	if manga.gotLimit != 7 {
		t.Errorf("latest limit = %d", manga.gotLimit)
	}

	get(t, app, "/api/manga/abc/chapters")
	if manga.gotID != "abc" {
		t.Errorf("chapters id = %q", manga.gotID)
	}

	get(t, app, "/api/chapters/xyz/pages")
	if manga.gotID != "xyz" {
		t.Errorf("pages id = %q", manga.gotID)
	}

	if status, _ := get(t, app, "/api/manga/trending?page=abc"); status != fiber.StatusBadRequest {
		t.Errorf("bad page status = %d", status)
	}
}

func TestRootAndHealth(t *testing.T) {
	app := newTestApp(&stubAnime{}, &stubManga{})

	status, body := get(t, app, "/")
	if status != fiber.StatusOK || string(body) != `{"message":"ANIMIX API is live."}` {
		t.Errorf("root = %d %s", status, body)
	}
	if status, _ := get(t, app, "/api/health"); status != fiber.StatusOK {
		t.Errorf("health status = %d", status)
	}
}
