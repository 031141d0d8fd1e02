package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"animix-api/internal/anilist"
	"animix-api/internal/apperr"
	"animix-api/internal/models"
	"animix-api/internal/normalize"
)

const (
	scheduleWindow      = 7 * 24 * time.Hour
	schedulePageSize    = 50
	topEpisodesPageSize = 50
	topEpisodesLimit    = 10
	recommendationLimit = 10
)

// AnimeConfig configures an AnimeService.
type AnimeConfig struct {
	Delays Delays
	// ScheduleLocation is the zone airing weekdays and times are computed in.
	ScheduleLocation *time.Location
	Now              func() time.Time
}

// AnimeService aggregates the primary and secondary anime catalogs.
type AnimeService struct {
	primary   PrimaryCatalog
	secondary SecondaryCatalog
	run       *runner
	loc       *time.Location
	now       func() time.Time
}

// NewAnimeService creates a new anime service.
func NewAnimeService(primary PrimaryCatalog, secondary SecondaryCatalog, cfg AnimeConfig) *AnimeService {
	loc := cfg.ScheduleLocation
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AnimeService{
		primary:   primary,
		secondary: secondary,
		run:       newRunner(cfg.Delays),
		loc:       loc,
		now:       now,
	}
}

// FilterSort maps a listing filter to the primary catalog's sort and status.
// An empty status means no status filter.
func FilterSort(filter string) (anilist.MediaSort, anilist.MediaStatus) {
	switch filter {
	case "airing":
		return anilist.SortPopularityDesc, anilist.StatusReleasing
	case "upcoming":
		return anilist.SortPopularityDesc, anilist.StatusNotYetReleased
	case "favorite":
		return anilist.SortFavouritesDesc, ""
	default:
		return anilist.SortPopularityDesc, ""
	}
}

// TopAnime lists top anime from the primary catalog, falling back to the
// secondary catalog's top listing.
func (s *AnimeService) TopAnime(ctx context.Context, params models.TopAnimeParams) (*models.AnimeList, error) {
	params.Validate()
	sortBy, status := FilterSort(params.Filter)

	return execute(ctx, s.run, OpTopAnime, (*models.AnimeList)(nil), map[Source]fetchFunc[*models.AnimeList]{
		SourcePrimary: func(ctx context.Context) (*models.AnimeList, error) {
			filter := anilist.MediaFilter{Sort: []anilist.MediaSort{sortBy}, Status: status}
			page, err := s.primary.MediaPage(ctx, filter, params.Page, params.Limit)
			if err != nil {
				return nil, err
			}
			return aniListPage(page), nil
		},
		SourceSecondary: func(ctx context.Context) (*models.AnimeList, error) {
			resp, err := s.secondary.TopAnime(ctx, params.Page, params.Limit)
			if err != nil {
				return nil, err
			}
			list := normalize.JikanAnimeList(resp)
			return &list, nil
		},
	})
}

// CurrentSeasonAnime lists this season's anime.
func (s *AnimeService) CurrentSeasonAnime(ctx context.Context, page int) (*models.AnimeList, error) {
	if page < 1 {
		page = 1
	}
	return execute(ctx, s.run, OpCurrentSeason, (*models.AnimeList)(nil), map[Source]fetchFunc[*models.AnimeList]{
		SourceSecondary: func(ctx context.Context) (*models.AnimeList, error) {
			resp, err := s.secondary.CurrentSeason(ctx, page)
			if err != nil {
				return nil, err
			}
			list := normalize.JikanAnimeList(resp)
			return &list, nil
		},
	})
}

var seasons = map[string]bool{"winter": true, "spring": true, "summer": true, "fall": true}

// SeasonalAnime lists the anime of one year and season.
func (s *AnimeService) SeasonalAnime(ctx context.Context, year int, season string, page int) (*models.AnimeList, error) {
	season = strings.ToLower(strings.TrimSpace(season))
	if !seasons[season] {
		return nil, apperr.Validation("season must be one of winter, spring, summer, fall")
	}
	if year < 1917 || year > s.now().Year()+1 {
		return nil, apperr.Validation("year %d is out of range", year)
	}
	if page < 1 {
		page = 1
	}

	return execute(ctx, s.run, OpSeasonal, (*models.AnimeList)(nil), map[Source]fetchFunc[*models.AnimeList]{
		SourceSecondary: func(ctx context.Context) (*models.AnimeList, error) {
			resp, err := s.secondary.Season(ctx, year, season, page)
			if err != nil {
				return nil, err
			}
			list := normalize.JikanAnimeList(resp)
			return &list, nil
		},
	})
}

// AnimeSchedule lists episodes aired in the trailing week, optionally only
// those whose weekday equals day. The fallback source filters by day itself.
func (s *AnimeService) AnimeSchedule(ctx context.Context, day string) (*models.Schedule, error) {
	day = strings.TrimSpace(day)

	return execute(ctx, s.run, OpSchedule, (*models.Schedule)(nil), map[Source]fetchFunc[*models.Schedule]{
		SourcePrimary: func(ctx context.Context) (*models.Schedule, error) {
			now := s.now()
			page, err := s.primary.AiringSchedules(ctx, anilist.AiringWindow{After: now.Add(-scheduleWindow), Before: now}, 1, schedulePageSize)
			if err != nil {
				return nil, err
			}
			results := make([]models.ScheduleEntry, 0, len(page.AiringSchedules))
			for _, a := range page.AiringSchedules {
				entry := normalize.AniListScheduleEntry(a, s.loc)
				if day != "" && (entry.AiringDay == nil || !strings.EqualFold(*entry.AiringDay, day)) {
					continue
				}
				results = append(results, entry)
			}
			return &models.Schedule{Results: results, Pagination: normalize.AniListPagination(page.PageInfo, len(results))}, nil
		},
		SourceSecondary: func(ctx context.Context) (*models.Schedule, error) {
			resp, err := s.secondary.Schedules(ctx, day)
			if err != nil {
				return nil, err
			}
			results := make([]models.ScheduleEntry, 0, len(resp.Data))
			for _, a := range resp.Data {
				results = append(results, normalize.JikanScheduleEntry(a))
			}
			return &models.Schedule{Results: results, Pagination: normalize.JikanPagination(resp.Pagination)}, nil
		},
	})
}

// SearchAnime runs a full-text search on the primary catalog.
func (s *AnimeService) SearchAnime(ctx context.Context, params models.SearchParams) (*models.AnimeList, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Query == "" {
		return nil, apperr.Validation("search query is required")
	}
	params.Validate()

	return execute(ctx, s.run, OpSearchAnime, (*models.AnimeList)(nil), map[Source]fetchFunc[*models.AnimeList]{
		SourcePrimary: func(ctx context.Context) (*models.AnimeList, error) {
			filter := anilist.MediaFilter{Search: params.Query, Sort: []anilist.MediaSort{anilist.SortPopularityDesc}}
			page, err := s.primary.MediaPage(ctx, filter, params.Page, params.Limit)
			if err != nil {
				return nil, err
			}
			return aniListPage(page), nil
		},
	})
}

// AnimeByID returns the primary detail record merged with secondary-catalog
// enrichment. Enrichment failures leave the merged fields empty.
func (s *AnimeService) AnimeByID(ctx context.Context, id string) (*models.AnimeDetail, error) {
	anilistID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || anilistID <= 0 {
		return nil, apperr.Validation("invalid anime id %q", id)
	}

	detail, err := execute(ctx, s.run, OpAnimeDetail, (*models.AnimeDetail)(nil), map[Source]fetchFunc[*models.AnimeDetail]{
		SourcePrimary: func(ctx context.Context) (*models.AnimeDetail, error) {
			media, err := s.primary.Media(ctx, anilistID)
			if err != nil {
				return nil, err
			}
			d := normalize.AniListDetail(*media)
			return &d, nil
		},
	})
	if err != nil {
		return nil, err
	}
	if detail.MalID == nil {
		return detail, nil
	}

	malID := *detail.MalID
	enrichment, _ := execute(ctx, s.run, OpDetailEnrichment, (*models.Enrichment)(nil), map[Source]fetchFunc[*models.Enrichment]{
		SourceSecondary: func(ctx context.Context) (*models.Enrichment, error) {
			anime, err := s.secondary.AnimeFull(ctx, malID)
			if err != nil {
				return nil, err
			}
			e := normalize.JikanEnrichment(*anime)
			return &e, nil
		},
	})
	if enrichment != nil {
		normalize.MergeEnrichment(detail, *enrichment)
	}
	return detail, nil
}

// AnimeEpisodes lists one page of episodes by secondary id.
func (s *AnimeService) AnimeEpisodes(ctx context.Context, malID, page int) (*models.EpisodeList, error) {
	if malID <= 0 {
		return nil, apperr.Validation("a valid MyAnimeList id is required to fetch episodes")
	}
	if page < 1 {
		page = 1
	}

	return execute(ctx, s.run, OpEpisodes, (*models.EpisodeList)(nil), map[Source]fetchFunc[*models.EpisodeList]{
		SourceSecondary: func(ctx context.Context) (*models.EpisodeList, error) {
			resp, err := s.secondary.Episodes(ctx, malID, page)
			if err != nil {
				return nil, err
			}
			results := make([]models.Episode, 0, len(resp.Data))
			for _, e := range resp.Data {
				results = append(results, normalize.JikanEpisode(e))
			}
			return &models.EpisodeList{Results: results, Pagination: normalize.JikanPagination(resp.Pagination)}, nil
		},
	})
}

// AnimeRecommendations returns up to ten user recommendations. It never
// fails: a missing id or provider error yields an empty list.
func (s *AnimeService) AnimeRecommendations(ctx context.Context, malID int) []models.Recommendation {
	if malID <= 0 {
		return []models.Recommendation{}
	}

	recs, _ := execute(ctx, s.run, OpRecommendations, []models.Recommendation{}, map[Source]fetchFunc[[]models.Recommendation]{
		SourceSecondary: func(ctx context.Context) ([]models.Recommendation, error) {
			entries, err := s.secondary.Recommendations(ctx, malID)
			if err != nil {
				return nil, err
			}
			if len(entries) > recommendationLimit {
				entries = entries[:recommendationLimit]
			}
			out := make([]models.Recommendation, 0, len(entries))
			for _, e := range entries {
				out = append(out, normalize.JikanRecommendation(e))
			}
			return out, nil
		},
	})
	return recs
}

// FamousAnimeByIDs looks up a fixed id set, returned in input order. It never
// fails: a provider error yields an empty list.
func (s *AnimeService) FamousAnimeByIDs(ctx context.Context, ids []int) []models.Anime {
	if len(ids) == 0 {
		return []models.Anime{}
	}

	famous, _ := execute(ctx, s.run, OpFamous, []models.Anime{}, map[Source]fetchFunc[[]models.Anime]{
		SourcePrimary: func(ctx context.Context) ([]models.Anime, error) {
			page, err := s.primary.MediaPage(ctx, anilist.MediaFilter{IDs: ids}, 1, len(ids))
			if err != nil {
				return nil, err
			}
			byID := make(map[int]anilist.MediaCore, len(page.Media))
			for _, m := range page.Media {
				byID[m.ID] = m
			}
			out := make([]models.Anime, 0, len(page.Media))
			for _, id := range ids {
				if m, ok := byID[id]; ok {
					out = append(out, normalize.AniListAnime(m))
					delete(byID, id)
				}
			}
			return out, nil
		},
	})
	return famous
}

// TopEpisodesOfWeek ranks episodes aired in the trailing week by the
// popularity of their anime. It never fails: a provider error yields an
// empty result.
func (s *AnimeService) TopEpisodesOfWeek(ctx context.Context) *models.WeeklyEpisodes {
	empty := &models.WeeklyEpisodes{Results: []models.WeeklyEpisode{}}

	top, _ := execute(ctx, s.run, OpTopEpisodes, empty, map[Source]fetchFunc[*models.WeeklyEpisodes]{
		SourcePrimary: func(ctx context.Context) (*models.WeeklyEpisodes, error) {
			now := s.now()
			page, err := s.primary.AiringSchedules(ctx, anilist.AiringWindow{After: now.Add(-scheduleWindow), Before: now}, 1, topEpisodesPageSize)
			if err != nil {
				return nil, err
			}
			schedules := make([]anilist.AiringSchedule, 0, len(page.AiringSchedules))
			for _, a := range page.AiringSchedules {
				if a.Media != nil && a.Media.ID != 0 {
					schedules = append(schedules, a)
				}
			}
			sort.SliceStable(schedules, func(i, j int) bool {
				return popularity(schedules[i]) > popularity(schedules[j])
			})
			if len(schedules) > topEpisodesLimit {
				schedules = schedules[:topEpisodesLimit]
			}
			results := make([]models.WeeklyEpisode, 0, len(schedules))
			for _, a := range schedules {
				if e, ok := normalize.AniListWeeklyEpisode(a); ok {
					results = append(results, e)
				}
			}
			slog.Debug("ranked weekly episodes", "candidates", len(page.AiringSchedules), "returned", len(results))
			return &models.WeeklyEpisodes{Results: results}, nil
		},
	})
	return top
}

func popularity(a anilist.AiringSchedule) int {
	if a.Media == nil || a.Media.Popularity == nil {
		return 0
	}
	return *a.Media.Popularity
}

func aniListPage(page *anilist.MediaPage) *models.AnimeList {
	results := make([]models.Anime, 0, len(page.Media))
	for _, m := range page.Media {
		results = append(results, normalize.AniListAnime(m))
	}
	return &models.AnimeList{Results: results, Pagination: normalize.AniListPagination(page.PageInfo, len(results))}
}
