package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"animix-api/internal/models"
)

// MangaService is the manga aggregation surface used by MangaHandler.
type MangaService interface {
	Trending(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error)
	Popular(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error)
	Search(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error)
	MangaDetails(ctx context.Context, id string) (*models.MangaDetail, error)
	MangaChapters(ctx context.Context, mangaID string, page, limit int) (*models.ChapterPage, error)
	LatestChapters(ctx context.Context, limit int) (*models.LatestChapters, error)
	ChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error)
}

// MangaHandler handles HTTP requests for manga and chapters.
type MangaHandler struct {
	svc MangaService
}

// NewMangaHandler creates a new MangaHandler.
func NewMangaHandler(svc MangaService) *MangaHandler {
	return &MangaHandler{svc: svc}
}

// Register mounts the manga and chapter routes on r, the /api group.
func (h *MangaHandler) Register(r fiber.Router) {
	r.Get("/manga/trending", h.Trending)
	r.Get("/manga/popular", h.Popular)
	r.Get("/manga/latest", h.Latest)
	r.Get("/manga/search", h.Search)
	r.Get("/manga/:id", h.Detail)
	r.Get("/manga/:id/chapters", h.Chapters)
	r.Get("/chapters/:chapterId/pages", h.Pages)
}

// Trending lists manga by rating.
// @Summary Trending manga
// @Tags manga
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.MangaPage
// @Router /manga/trending [get]
func (h *MangaHandler) Trending(c fiber.Ctx) error {
	return h.list(c, "Failed to fetch trending manga", h.svc.Trending)
}

// Popular lists manga by follows.
// @Summary Popular manga
// @Tags manga
// @Produce json
// @Success 200 {object} models.MangaPage
// @Router /manga/popular [get]
func (h *MangaHandler) Popular(c fiber.Ctx) error {
	return h.list(c, "Failed to fetch popular manga", h.svc.Popular)
}

// Search lists manga matching ?query.
// @Summary Search manga
// @Tags manga
// @Produce json
// @Param query query string true "Title query"
// @Success 200 {object} models.MangaPage
// @Failure 400 {object} ErrorResponse
// @Router /manga/search [get]
func (h *MangaHandler) Search(c fiber.Ctx) error {
	return h.list(c, "Failed to search manga", h.svc.Search)
}

func (h *MangaHandler) list(c fiber.Ctx, summary string, fetch func(context.Context, models.MangaListParams) (*models.MangaPage, error)) error {
	var params models.MangaListParams
	if err := c.Bind().Query(&params); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := fetch(c.Context(), params)
	if err != nil {
		return respondError(c, summary, err)
	}
	return c.JSON(result)
}

// Latest lists recently published chapters.
// @Summary Latest chapters
// @Tags manga
// @Produce json
// @Param limit query int false "Number of chapters" default(12)
// @Success 200 {object} models.LatestChapters
// @Router /manga/latest [get]
func (h *MangaHandler) Latest(c fiber.Ctx) error {
	result, err := h.svc.LatestChapters(c.Context(), fiber.Query(c, "limit", 0))
	if err != nil {
		return respondError(c, "Failed to fetch latest chapters", err)
	}
	return c.JSON(result)
}

// Detail returns one manga.
// @Summary Manga detail
// @Tags manga
// @Produce json
// @Param id path string true "MangaDex UUID"
// @Success 200 {object} models.MangaDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /manga/{id} [get]
func (h *MangaHandler) Detail(c fiber.Ctx) error {
	result, err := h.svc.MangaDetails(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, "Failed to fetch manga details", err)
	}
	return c.JSON(result)
}

// Chapters lists a manga's chapters in reading order.
// @Summary Manga chapters
// @Tags manga
// @Produce json
// @Param id path string true "MangaDex UUID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(100)
// @Success 200 {object} models.ChapterPage
// @Router /manga/{id}/chapters [get]
func (h *MangaHandler) Chapters(c fiber.Ctx) error {
	result, err := h.svc.MangaChapters(c.Context(), c.Params("id"), fiber.Query(c, "page", 1), fiber.Query(c, "limit", 0))
	if err != nil {
		return respondError(c, "Failed to fetch chapters", err)
	}
	return c.JSON(result)
}

// Pages resolves the page images of a chapter.
// @Summary Chapter pages
// @Tags chapters
// @Produce json
// @Param chapterId path string true "MangaDex chapter UUID"
// @Success 200 {object} models.ChapterPages
// @Failure 404 {object} ErrorResponse
// @Router /chapters/{chapterId}/pages [get]
func (h *MangaHandler) Pages(c fiber.Ctx) error {
	result, err := h.svc.ChapterPages(c.Context(), c.Params("chapterId"))
	if err != nil {
		return respondError(c, "Failed to fetch chapter pages", err)
	}
	return c.JSON(result)
}
