package service

import (
	"context"

	"animix-api/internal/anilist"
	"animix-api/internal/jikan"
	"animix-api/internal/mangadex"
)

// PrimaryCatalog is the GraphQL anime catalog.
type PrimaryCatalog interface {
	MediaPage(ctx context.Context, filter anilist.MediaFilter, page, perPage int) (*anilist.MediaPage, error)
	Media(ctx context.Context, id int) (*anilist.MediaDetail, error)
	AiringSchedules(ctx context.Context, window anilist.AiringWindow, page, perPage int) (*anilist.AiringPage, error)
}

// SecondaryCatalog is the REST anime catalog used for fallback and
// enrichment.
type SecondaryCatalog interface {
	TopAnime(ctx context.Context, page, limit int) (*jikan.AnimeListResponse, error)
	CurrentSeason(ctx context.Context, page int) (*jikan.AnimeListResponse, error)
	Season(ctx context.Context, year int, season string, page int) (*jikan.AnimeListResponse, error)
	Schedules(ctx context.Context, day string) (*jikan.AnimeListResponse, error)
	AnimeFull(ctx context.Context, malID int) (*jikan.Anime, error)
	Episodes(ctx context.Context, malID, page int) (*jikan.EpisodeListResponse, error)
	Recommendations(ctx context.Context, malID int) ([]jikan.RecommendationEntry, error)
}

// StatisticsSource batch-fetches manga statistics.
type StatisticsSource interface {
	Statistics(ctx context.Context, ids []string) (map[string]mangadex.MangaStatistics, error)
}

// MangaCatalog is the manga provider.
type MangaCatalog interface {
	StatisticsSource
	SearchManga(ctx context.Context, opts *mangadex.MangaListOpts) (*mangadex.MangaList, error)
	GetManga(ctx context.Context, id string) (*mangadex.Manga, error)
	ListChapters(ctx context.Context, opts *mangadex.ChapterListOpts) (*mangadex.ChapterList, error)
	AtHomeServer(ctx context.Context, chapterID string) (*mangadex.AtHomeServer, error)
}

var (
	_ PrimaryCatalog   = (*anilist.Client)(nil)
	_ SecondaryCatalog = (*jikan.Client)(nil)
	_ MangaCatalog     = (*mangadex.Client)(nil)
)
