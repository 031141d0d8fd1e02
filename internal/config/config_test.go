package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "PROVIDER_TIMEOUT", "FALLBACK_DELAY", "RECOMMENDATION_DELAY",
		"MANGA_CONTENT_RATINGS", "MANGA_LANGUAGES", "SCHEDULE_TIMEZONE", "FAMOUS_ANIME_IDS",
		"REDIS_ADDR", "REDIS_DB", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS", "LOG_LEVEL",
		"IMAGE_PROXY_PREFIXES", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Providers.Timeout != 15*time.Second || cfg.Providers.FallbackDelay != 500*time.Millisecond || cfg.Providers.RecommendationDelay != time.Second {
		t.Errorf("providers = %+v", cfg.Providers)
	}
	if !reflect.DeepEqual(cfg.Providers.MangaContentRatings, []string{"safe", "suggestive"}) {
		t.Errorf("content ratings = %v", cfg.Providers.MangaContentRatings)
	}
	if !reflect.DeepEqual(cfg.Providers.MangaLanguages, []string{"en"}) {
		t.Errorf("languages = %v", cfg.Providers.MangaLanguages)
	}
	if len(cfg.FamousAnimeIDs) != 10 || cfg.FamousAnimeIDs[0] != 20 {
		t.Errorf("famous ids = %v", cfg.FamousAnimeIDs)
	}
	if cfg.ScheduleLocation != time.UTC {
		t.Errorf("schedule location = %v", cfg.ScheduleLocation)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis enabled without an address")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
	if len(cfg.ImageProxyPrefixes) != 2 {
		t.Errorf("image proxy prefixes = %v", cfg.ImageProxyPrefixes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("MANGA_LANGUAGES", " en , es-la ,")
	t.Setenv("FAMOUS_ANIME_IDS", "1, 2,3")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Providers.Timeout != 3*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Providers.MangaLanguages, []string{"en", "es-la"}) {
		t.Errorf("languages = %v", cfg.Providers.MangaLanguages)
	}
	if !reflect.DeepEqual(cfg.FamousAnimeIDs, []int{1, 2, 3}) {
		t.Errorf("famous ids = %v", cfg.FamousAnimeIDs)
	}
	if !cfg.Redis.Enabled() || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("redis = %+v, level = %v", cfg.Redis, cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PROVIDER_TIMEOUT", "soon"},
		{"FALLBACK_DELAY", "5"},
		{"REDIS_DB", "zero"},
		{"RATE_LIMIT_MAX", "lots"},
		{"SCHEDULE_TIMEZONE", "Mars/Olympus_Mons"},
		{"FAMOUS_ANIME_IDS", "20,abc"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
