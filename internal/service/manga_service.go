package service

import (
	"context"
	"strings"

	"github.com/antihax/optional"
	"github.com/google/uuid"

	"animix-api/internal/apperr"
	"animix-api/internal/mangadex"
	"animix-api/internal/models"
	"animix-api/internal/normalize"
)

const (
	DefaultMangaListLimit     = 12
	DefaultMangaSearchLimit   = 20
	DefaultChapterLimit       = 100
	DefaultLatestChapterLimit = 12

	mangaResultWindow = 10000
)

// MangaService aggregates the manga provider and its statistics.
type MangaService struct {
	catalog    MangaCatalog
	stats      *StatisticsEnricher
	run        *runner
	uploadsURL string
}

// NewMangaService creates a new manga service. uploadsURL is the cover image
// host.
func NewMangaService(catalog MangaCatalog, uploadsURL string) *MangaService {
	return &MangaService{
		catalog:    catalog,
		stats:      NewStatisticsEnricher(catalog),
		run:        newRunner(Delays{}),
		uploadsURL: strings.TrimRight(uploadsURL, "/"),
	}
}

// Trending lists manga by rating.
func (s *MangaService) Trending(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error) {
	params.Validate(DefaultMangaListLimit)
	return s.fetchMangaList(ctx, params, &mangadex.MangaListOpts{OrderRating: optional.NewString("desc")})
}

// Popular lists manga by follow count.
func (s *MangaService) Popular(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error) {
	params.Validate(DefaultMangaListLimit)
	return s.fetchMangaList(ctx, params, &mangadex.MangaListOpts{OrderFollowedCount: optional.NewString("desc")})
}

// Search lists manga matching a title query by relevance.
func (s *MangaService) Search(ctx context.Context, params models.MangaListParams) (*models.MangaPage, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Query == "" {
		return nil, apperr.Validation("search query is required")
	}
	params.Validate(DefaultMangaSearchLimit)
	return s.fetchMangaList(ctx, params, &mangadex.MangaListOpts{
		Title:          optional.NewString(params.Query),
		OrderRelevance: optional.NewString("desc"),
	})
}

func (s *MangaService) fetchMangaList(ctx context.Context, params models.MangaListParams, opts *mangadex.MangaListOpts) (*models.MangaPage, error) {
	offset, err := mangaOffset(params)
	if err != nil {
		return nil, err
	}
	opts.Limit = params.Limit
	opts.Offset = offset

	list, err := execute(ctx, s.run, OpMangaList, (*mangadex.MangaList)(nil), map[Source]fetchFunc[*mangadex.MangaList]{
		SourceManga: func(ctx context.Context) (*mangadex.MangaList, error) {
			return s.catalog.SearchManga(ctx, opts)
		},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		ids = append(ids, m.ID)
	}
	stats := s.stats.Fetch(ctx, ids)

	results := make([]models.Manga, 0, len(list.Data))
	for _, m := range list.Data {
		results = append(results, normalize.MangaDexManga(m, lookup(stats, m.ID), s.uploadsURL))
	}
	return &models.MangaPage{
		Results:     results,
		Total:       list.Total,
		Limit:       params.Limit,
		Page:        params.Page,
		HasNextPage: models.HasNextPage(opts.Offset, params.Limit, list.Total),
	}, nil
}

// MangaDetails returns one manga with statistics and creator names merged.
// A statistics failure leaves the rating fields nil.
func (s *MangaService) MangaDetails(ctx context.Context, id string) (*models.MangaDetail, error) {
	id, err := parseID("manga", id)
	if err != nil {
		return nil, err
	}

	m, err := execute(ctx, s.run, OpMangaDetail, (*mangadex.Manga)(nil), map[Source]fetchFunc[*mangadex.Manga]{
		SourceManga: func(ctx context.Context) (*mangadex.Manga, error) {
			return s.catalog.GetManga(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}

	stats := s.stats.Fetch(ctx, []string{m.ID})
	return &models.MangaDetail{
		Manga:   normalize.MangaDexManga(*m, lookup(stats, m.ID), s.uploadsURL),
		Authors: normalize.MangaDexAuthors(*m),
	}, nil
}

// MangaChapters lists a manga's chapters in ascending chapter order.
func (s *MangaService) MangaChapters(ctx context.Context, mangaID string, page, limit int) (*models.ChapterPage, error) {
	mangaID, err := parseID("manga", mangaID)
	if err != nil {
		return nil, err
	}
	params := models.MangaListParams{Page: page, Limit: limit}
	params.Validate(DefaultChapterLimit)
	offset, err := mangaOffset(params)
	if err != nil {
		return nil, err
	}

	list, err := execute(ctx, s.run, OpMangaChapters, (*mangadex.ChapterList)(nil), map[Source]fetchFunc[*mangadex.ChapterList]{
		SourceManga: func(ctx context.Context) (*mangadex.ChapterList, error) {
			return s.catalog.ListChapters(ctx, &mangadex.ChapterListOpts{
				Limit:        params.Limit,
				Offset:       optional.NewInt32(int32(offset)),
				Manga:        optional.NewString(mangaID),
				OrderChapter: optional.NewString("asc"),
			})
		},
	})
	if err != nil {
		return nil, err
	}

	results := make([]models.Chapter, 0, len(list.Data))
	for _, c := range list.Data {
		results = append(results, normalize.MangaDexChapter(c))
	}
	return &models.ChapterPage{
		Results:     results,
		Total:       list.Total,
		Limit:       params.Limit,
		Page:        params.Page,
		HasNextPage: models.HasNextPage(offset, params.Limit, list.Total),
	}, nil
}

// LatestChapters lists the most recently readable chapters, each with a
// summary of its manga or nil when the provider did not embed one.
func (s *MangaService) LatestChapters(ctx context.Context, limit int) (*models.LatestChapters, error) {
	params := models.MangaListParams{Page: 1, Limit: limit}
	params.Validate(DefaultLatestChapterLimit)

	list, err := execute(ctx, s.run, OpLatestChapters, (*mangadex.ChapterList)(nil), map[Source]fetchFunc[*mangadex.ChapterList]{
		SourceManga: func(ctx context.Context) (*mangadex.ChapterList, error) {
			return s.catalog.ListChapters(ctx, &mangadex.ChapterListOpts{
				Limit:           params.Limit,
				Includes:        []string{mangadex.RelManga},
				OrderReadableAt: optional.NewString("desc"),
			})
		},
	})
	if err != nil {
		return nil, err
	}

	embedded := make(map[string]mangadex.Manga)
	ids := make([]string, 0, len(list.Data))
	for _, c := range list.Data {
		for _, rel := range c.Relationships {
			if m, ok := rel.Manga(); ok {
				if _, seen := embedded[m.ID]; !seen {
					embedded[m.ID] = m
					ids = append(ids, m.ID)
				}
			}
		}
	}
	stats := s.stats.Fetch(ctx, ids)

	results := make([]models.LatestChapter, 0, len(list.Data))
	for _, c := range list.Data {
		entry := models.LatestChapter{Chapter: normalize.MangaDexChapter(c)}
		for _, rel := range c.Relationships {
			if m, ok := embedded[rel.ID]; ok && rel.Type == mangadex.RelManga {
				summary := normalize.MangaDexManga(m, lookup(stats, m.ID), s.uploadsURL)
				entry.Manga = &summary
				break
			}
		}
		results = append(results, entry)
	}
	return &models.LatestChapters{Results: results}, nil
}

// ChapterPages resolves absolute page image URLs for a chapter.
func (s *MangaService) ChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error) {
	chapterID, err := parseID("chapter", chapterID)
	if err != nil {
		return nil, err
	}

	server, err := execute(ctx, s.run, OpChapterPages, (*mangadex.AtHomeServer)(nil), map[Source]fetchFunc[*mangadex.AtHomeServer]{
		SourceManga: func(ctx context.Context) (*mangadex.AtHomeServer, error) {
			return s.catalog.AtHomeServer(ctx, chapterID)
		},
	})
	if err != nil {
		return nil, err
	}
	if server.BaseURL == "" || server.Chapter == nil || server.Chapter.Hash == "" || len(server.Chapter.Data) == 0 {
		return nil, apperr.NotFound(string(SourceManga), "pages of chapter %s", chapterID)
	}

	pages := normalize.ChapterPages(chapterID, server.BaseURL, server.Chapter.Hash, server.Chapter.Data)
	return &pages, nil
}

// mangaOffset rejects pages past the provider's result window, where
// offset+limit may not exceed mangaResultWindow.
func mangaOffset(params models.MangaListParams) (int, error) {
	if params.Page > mangaResultWindow/params.Limit {
		return 0, apperr.Validation("page %d is beyond the last %d results", params.Page, mangaResultWindow)
	}
	return models.Offset(params.Page, params.Limit), nil
}

func parseID(kind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperr.Validation("invalid %s id %q", kind, raw)
	}
	return id.String(), nil
}
