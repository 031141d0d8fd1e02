package cmd

import (
	"animix-api/internal/anilist"
	"animix-api/internal/config"
	"animix-api/internal/jikan"
	"animix-api/internal/mangadex"
	"animix-api/internal/service"
)

// Services are the aggregation services wired to live provider clients.
type Services struct {
	Anime *service.AnimeService
	Manga *service.MangaService
}

// NewServices builds the provider clients and services from cfg.
func NewServices(cfg *config.Config) *Services {
	p := cfg.Providers

	primary := anilist.NewClient(p.AniListURL, p.Timeout, p.UserAgent)
	secondary := jikan.NewClient(p.JikanURL, p.Timeout, p.UserAgent)
	manga := mangadex.NewClient(mangadex.Options{
		BaseURL:        p.MangaDexURL,
		UserAgent:      p.UserAgent,
		Timeout:        p.Timeout,
		ContentRatings: p.MangaContentRatings,
		Languages:      p.MangaLanguages,
	})

	return &Services{
		Anime: service.NewAnimeService(primary, secondary, service.AnimeConfig{
			Delays: service.Delays{
				Fallback:       p.FallbackDelay,
				Recommendation: p.RecommendationDelay,
			},
			ScheduleLocation: cfg.ScheduleLocation,
		}),
		Manga: service.NewMangaService(manga, p.MangaDexUploadsURL),
	}
}
