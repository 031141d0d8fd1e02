package service

import (
	"context"
	"errors"

	"animix-api/internal/anilist"
	"animix-api/internal/apperr"
	"animix-api/internal/jikan"
	"animix-api/internal/mangadex"
)

var errUpstream = apperr.Upstream("test", "status 503", errors.New("unavailable"))

type fakePrimary struct {
	mediaPage func(filter anilist.MediaFilter, page, perPage int) (*anilist.MediaPage, error)
	media     func(id int) (*anilist.MediaDetail, error)
	airing    func(window anilist.AiringWindow) (*anilist.AiringPage, error)
	calls     int
}

func (f *fakePrimary) MediaPage(_ context.Context, filter anilist.MediaFilter, page, perPage int) (*anilist.MediaPage, error) {
	f.calls++
	if f.mediaPage == nil {
		return nil, errUpstream
	}
	return f.mediaPage(filter, page, perPage)
}

func (f *fakePrimary) Media(_ context.Context, id int) (*anilist.MediaDetail, error) {
	f.calls++
	if f.media == nil {
		return nil, errUpstream
	}
	return f.media(id)
}

func (f *fakePrimary) AiringSchedules(_ context.Context, window anilist.AiringWindow, _, _ int) (*anilist.AiringPage, error) {
	f.calls++
	if f.airing == nil {
		return nil, errUpstream
	}
	return f.airing(window)
}

type fakeSecondary struct {
	list            func() (*jikan.AnimeListResponse, error)
	schedules       func(day string) (*jikan.AnimeListResponse, error)
	full            func(malID int) (*jikan.Anime, error)
	episodes        func(malID, page int) (*jikan.EpisodeListResponse, error)
	recommendations func(malID int) ([]jikan.RecommendationEntry, error)
	calls           int
}

func (f *fakeSecondary) listing() (*jikan.AnimeListResponse, error) {
	f.calls++
	if f.list == nil {
		return nil, errUpstream
	}
	return f.list()
}

func (f *fakeSecondary) TopAnime(context.Context, int, int) (*jikan.AnimeListResponse, error) {
	return f.listing()
}

func (f *fakeSecondary) CurrentSeason(context.Context, int) (*jikan.AnimeListResponse, error) {
	return f.listing()
}

func (f *fakeSecondary) Season(context.Context, int, string, int) (*jikan.AnimeListResponse, error) {
	return f.listing()
}

func (f *fakeSecondary) Schedules(_ context.Context, day string) (*jikan.AnimeListResponse, error) {
	f.calls++
	if f.schedules == nil {
		return nil, errUpstream
	}
	return f.schedules(day)
}

func (f *fakeSecondary) AnimeFull(_ context.Context, malID int) (*jikan.Anime, error) {
	f.calls++
	if f.full == nil {
		return nil, errUpstream
	}
	return f.full(malID)
}

func (f *fakeSecondary) Episodes(_ context.Context, malID, page int) (*jikan.EpisodeListResponse, error) {
	f.calls++
	if f.episodes == nil {
		return nil, errUpstream
	}
	return f.episodes(malID, page)
}

func (f *fakeSecondary) Recommendations(_ context.Context, malID int) ([]jikan.RecommendationEntry, error) {
	f.calls++
	if f.recommendations == nil {
		return nil, errUpstream
	}
	return f.recommendations(malID)
}

type fakeManga struct {
	search     func(opts *mangadex.MangaListOpts) (*mangadex.MangaList, error)
	get        func(id string) (*mangadex.Manga, error)
	chapters   func(opts *mangadex.ChapterListOpts) (*mangadex.ChapterList, error)
	atHome     func(chapterID string) (*mangadex.AtHomeServer, error)
	statistics func(ids []string) (map[string]mangadex.MangaStatistics, error)

	calls      int
	statsCalls int
	statsIDs   []string
}

func (f *fakeManga) SearchManga(_ context.Context, opts *mangadex.MangaListOpts) (*mangadex.MangaList, error) {
	f.calls++
	if f.search == nil {
		return nil, errUpstream
	}
	return f.search(opts)
}

func (f *fakeManga) GetManga(_ context.Context, id string) (*mangadex.Manga, error) {
	f.calls++
	if f.get == nil {
		return nil, errUpstream
	}
	return f.get(id)
}

func (f *fakeManga) ListChapters(_ context.Context, opts *mangadex.ChapterListOpts) (*mangadex.ChapterList, error) {
	f.calls++
	if f.chapters == nil {
		return nil, errUpstream
	}
	return f.chapters(opts)
}

func (f *fakeManga) AtHomeServer(_ context.Context, chapterID string) (*mangadex.AtHomeServer, error) {
	f.calls++
	if f.atHome == nil {
		return nil, errUpstream
	}
	return f.atHome(chapterID)
}

func (f *fakeManga) Statistics(_ context.Context, ids []string) (map[string]mangadex.MangaStatistics, error) {
	f.statsCalls++
	f.statsIDs = ids
	if f.statistics == nil {
		return nil, errUpstream
	}
	return f.statistics(ids)
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
