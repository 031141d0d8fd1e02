package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API.
type Config struct {
	Providers ProvidersConfig
	Redis     RedisConfig
	Port      string
	LogLevel  slog.Level

	// ScheduleLocation is the zone weekly schedules are reported in.
	ScheduleLocation   *time.Location
	FamousAnimeIDs     []int
	CORSOrigins        []string
	ImageProxyPrefixes []string

	RateLimitMax           int
	RateLimitWindowSeconds int
}

// ProvidersConfig holds the upstream catalog endpoints and call settings.
type ProvidersConfig struct {
	AniListURL          string
	JikanURL            string
	MangaDexURL         string
	MangaDexUploadsURL  string
	Timeout             time.Duration
	UserAgent           string
	FallbackDelay       time.Duration
	RecommendationDelay time.Duration
	MangaContentRatings []string
	MangaLanguages      []string
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

const defaultFamousAnimeIDs = "20,21,269,813,6702,1535,11061,16498,31964,101922"

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	rateLimitMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_MAX: %w", err)
	}
	rateLimitWindow, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}

	timeout, err := getDuration("PROVIDER_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	fallbackDelay, err := getDuration("FALLBACK_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	recommendationDelay, err := getDuration("RECOMMENDATION_DELAY", time.Second)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(getEnv("SCHEDULE_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_TIMEZONE: %w", err)
	}

	famous, err := parseIDs(getEnv("FAMOUS_ANIME_IDS", defaultFamousAnimeIDs))
	if err != nil {
		return nil, fmt.Errorf("FAMOUS_ANIME_IDS: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Providers: ProvidersConfig{
			AniListURL:          getEnv("ANILIST_URL", "https://graphql.anilist.co"),
			JikanURL:            getEnv("JIKAN_URL", "https://api.jikan.moe/v4"),
			MangaDexURL:         getEnv("MANGADEX_API_URL", "https://api.mangadex.org"),
			MangaDexUploadsURL:  getEnv("MANGADEX_UPLOADS_URL", "https://uploads.mangadex.org"),
			Timeout:             timeout,
			UserAgent:           getEnv("PROVIDER_USER_AGENT", "animix-api/1.0"),
			FallbackDelay:       fallbackDelay,
			RecommendationDelay: recommendationDelay,
			MangaContentRatings: splitList(getEnv("MANGA_CONTENT_RATINGS", "safe,suggestive")),
			MangaLanguages:      splitList(getEnv("MANGA_LANGUAGES", "en")),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Port:                   getEnv("SERVER_PORT", "5000"),
		LogLevel:               level,
		ScheduleLocation:       loc,
		FamousAnimeIDs:         famous,
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		ImageProxyPrefixes:     splitList(getEnv("IMAGE_PROXY_PREFIXES", "https://uploads.mangadex.org/,https://mangadex.org/")),
		RateLimitMax:           rateLimitMax,
		RateLimitWindowSeconds: rateLimitWindow,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(s string) ([]int, error) {
	parts := splitList(s)
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
