package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"animix-api/internal/models"
)

// AnimeService is the anime aggregation surface used by AnimeHandler.
type AnimeService interface {
	TopAnime(ctx context.Context, params models.TopAnimeParams) (*models.AnimeList, error)
	CurrentSeasonAnime(ctx context.Context, page int) (*models.AnimeList, error)
	SeasonalAnime(ctx context.Context, year int, season string, page int) (*models.AnimeList, error)
	AnimeSchedule(ctx context.Context, day string) (*models.Schedule, error)
	SearchAnime(ctx context.Context, params models.SearchParams) (*models.AnimeList, error)
	AnimeByID(ctx context.Context, id string) (*models.AnimeDetail, error)
	AnimeEpisodes(ctx context.Context, malID, page int) (*models.EpisodeList, error)
	AnimeRecommendations(ctx context.Context, malID int) []models.Recommendation
	FamousAnimeByIDs(ctx context.Context, ids []int) []models.Anime
	TopEpisodesOfWeek(ctx context.Context) *models.WeeklyEpisodes
}

// AnimeHandler handles HTTP requests for anime.
type AnimeHandler struct {
	svc       AnimeService
	famousIDs []int
}

// NewAnimeHandler creates a new AnimeHandler. famousIDs is the fixed id set
// served by the famous listing.
func NewAnimeHandler(svc AnimeService, famousIDs []int) *AnimeHandler {
	return &AnimeHandler{svc: svc, famousIDs: famousIDs}
}

// Register mounts the anime routes on r. Static paths come before /:id.
func (h *AnimeHandler) Register(r fiber.Router) {
	r.Get("/top", h.TopAnime)
	r.Get("/season/now", h.CurrentSeason)
	r.Get("/season/:year/:season", h.Seasonal)
	r.Get("/schedule", h.Schedule)
	r.Get("/search", h.Search)
	r.Get("/famous", h.Famous)
	r.Get("/episodes/weekly-top", h.WeeklyTopEpisodes)
	r.Get("/:id", h.Detail)
	r.Get("/:id/episodes", h.Episodes)
	r.Get("/:id/recommendations", h.Recommendations)
}

// TopAnime returns a page of top anime.
// @Summary Top anime
// @Tags anime
// @Produce json
// @Param filter query string false "airing, upcoming, favorite or bypopularity" default(airing)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.AnimeList
// @Failure 502 {object} ErrorResponse
// @Router /anime/top [get]
func (h *AnimeHandler) TopAnime(c fiber.Ctx) error {
	var params models.TopAnimeParams
	if err := c.Bind().Query(&params); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.svc.TopAnime(c.Context(), params)
	if err != nil {
		return respondError(c, "Failed to fetch top anime", err)
	}
	return c.JSON(result)
}

// CurrentSeason returns this season's anime.
// @Summary Current season
// @Tags anime
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.AnimeList
// @Router /anime/season/now [get]
func (h *AnimeHandler) CurrentSeason(c fiber.Ctx) error {
	result, err := h.svc.CurrentSeasonAnime(c.Context(), fiber.Query(c, "page", 1))
	if err != nil {
		return respondError(c, "Failed to fetch current season anime", err)
	}
	return c.JSON(result)
}

// Seasonal returns the anime of one year and season.
// @Summary Seasonal anime
// @Tags anime
// @Produce json
// @Param year path int true "Year"
// @Param season path string true "winter, spring, summer or fall"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.AnimeList
// @Failure 400 {object} ErrorResponse
// @Router /anime/season/{year}/{season} [get]
func (h *AnimeHandler) Seasonal(c fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return badRequest(c, "year must be a number")
	}

	result, err := h.svc.SeasonalAnime(c.Context(), year, c.Params("season"), fiber.Query(c, "page", 1))
	if err != nil {
		return respondError(c, "Failed to fetch seasonal anime", err)
	}
	return c.JSON(result)
}

// Schedule returns the airing schedule, optionally for one weekday.
// @Summary Airing schedule
// @Tags anime
// @Produce json
// @Param day query string false "Weekday name"
// @Success 200 {object} models.Schedule
// @Router /anime/schedule [get]
func (h *AnimeHandler) Schedule(c fiber.Ctx) error {
	result, err := h.svc.AnimeSchedule(c.Context(), c.Query("day"))
	if err != nil {
		return respondError(c, "Failed to fetch anime schedule", err)
	}
	return c.JSON(result)
}

// Search runs a full-text anime search.
// @Summary Search anime
// @Tags anime
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} models.AnimeList
// @Failure 400 {object} ErrorResponse
// @Router /anime/search [get]
func (h *AnimeHandler) Search(c fiber.Ctx) error {
	var params models.SearchParams
	if err := c.Bind().Query(&params); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.svc.SearchAnime(c.Context(), params)
	if err != nil {
		return respondError(c, "Failed to search anime", err)
	}
	return c.JSON(result)
}

// Famous returns the configured set of well-known titles.
func (h *AnimeHandler) Famous(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"results": h.svc.FamousAnimeByIDs(c.Context(), h.famousIDs)})
}

// WeeklyTopEpisodes returns the most popular episodes of the past week.
func (h *AnimeHandler) WeeklyTopEpisodes(c fiber.Ctx) error {
	return c.JSON(h.svc.TopEpisodesOfWeek(c.Context()))
}

// Detail returns one anime with relations and enrichment.
// @Summary Anime detail
// @Tags anime
// @Produce json
// @Param id path int true "AniList ID"
// @Success 200 {object} models.AnimeDetail
// @Failure 404 {object} ErrorResponse
// @Router /anime/{id} [get]
func (h *AnimeHandler) Detail(c fiber.Ctx) error {
	result, err := h.svc.AnimeByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, "Failed to fetch anime details", err)
	}
	return c.JSON(result)
}

// Episodes lists episodes. The malId query parameter wins over the path id.
// @Summary Anime episodes
// @Tags anime
// @Produce json
// @Param id path int true "Anime ID"
// @Param malId query int false "MyAnimeList ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.EpisodeList
// @Router /anime/{id}/episodes [get]
func (h *AnimeHandler) Episodes(c fiber.Ctx) error {
	result, err := h.svc.AnimeEpisodes(c.Context(), malID(c), fiber.Query(c, "page", 1))
	if err != nil {
		return respondError(c, "Failed to fetch episodes", err)
	}
	return c.JSON(result)
}

// Recommendations lists user recommendations. It always answers 200.
func (h *AnimeHandler) Recommendations(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"results": h.svc.AnimeRecommendations(c.Context(), malID(c))})
}

func malID(c fiber.Ctx) int {
	if id := fiber.Query(c, "malId", 0); id > 0 {
		return id
	}
	id, _ := strconv.Atoi(c.Params("id"))
	return id
}
