package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Source names a provider.
type Source string

const (
	SourcePrimary   Source = "anilist"
	SourceSecondary Source = "jikan"
	SourceManga     Source = "mangadex"
)

// OnError is what a step does when its source fails.
type OnError int

const (
	// Propagate returns the error to the caller.
	Propagate OnError = iota
	// FallThrough moves on to the next step. The last step's error is returned
	// when every step fails.
	FallThrough
	// SoftFail returns the operation's default value and no error.
	SoftFail
)

func (o OnError) String() string {
	switch o {
	case Propagate:
		return "propagate"
	case FallThrough:
		return "fall through"
	case SoftFail:
		return "soft fail"
	default:
		return "unknown"
	}
}

// Delay selects a fixed pause taken before a step's call.
type Delay int

const (
	NoDelay Delay = iota
	FallbackDelay
	RecommendationDelay
)

// Step is one source attempt of an operation.
type Step struct {
	Source  Source
	OnError OnError
	Delay   Delay
}

// Operation names a logical aggregation operation.
type Operation string

const (
	OpTopAnime         Operation = "top_anime"
	OpCurrentSeason    Operation = "current_season"
	OpSeasonal         Operation = "seasonal"
	OpSchedule         Operation = "schedule"
	OpSearchAnime      Operation = "search_anime"
	OpAnimeDetail      Operation = "anime_detail"
	OpDetailEnrichment Operation = "anime_detail_enrichment"
	OpEpisodes         Operation = "episodes"
	OpRecommendations  Operation = "recommendations"
	OpFamous           Operation = "famous"
	OpTopEpisodes      Operation = "top_episodes"
	OpMangaList        Operation = "manga_list"
	OpMangaDetail      Operation = "manga_detail"
	OpMangaChapters    Operation = "manga_chapters"
	OpLatestChapters   Operation = "latest_chapters"
	OpChapterPages     Operation = "chapter_pages"
	OpMangaStatistics  Operation = "manga_statistics"
)

// Policies maps every operation to its ordered source steps.
var Policies = map[Operation][]Step{
	OpTopAnime: {
		{Source: SourcePrimary, OnError: FallThrough},
		{Source: SourceSecondary, OnError: Propagate, Delay: FallbackDelay},
	},
	OpCurrentSeason: {{Source: SourceSecondary, OnError: Propagate}},
	OpSeasonal:      {{Source: SourceSecondary, OnError: Propagate}},
	OpSchedule: {
		{Source: SourcePrimary, OnError: FallThrough},
		{Source: SourceSecondary, OnError: Propagate, Delay: FallbackDelay},
	},
	OpSearchAnime:      {{Source: SourcePrimary, OnError: Propagate}},
	OpAnimeDetail:      {{Source: SourcePrimary, OnError: Propagate}},
	OpDetailEnrichment: {{Source: SourceSecondary, OnError: SoftFail}},
	OpEpisodes:         {{Source: SourceSecondary, OnError: Propagate}},
	OpRecommendations:  {{Source: SourceSecondary, OnError: SoftFail, Delay: RecommendationDelay}},
	OpFamous:           {{Source: SourcePrimary, OnError: SoftFail}},
	OpTopEpisodes:      {{Source: SourcePrimary, OnError: SoftFail}},
	OpMangaList:        {{Source: SourceManga, OnError: Propagate}},
	OpMangaDetail:      {{Source: SourceManga, OnError: Propagate}},
	OpMangaChapters:    {{Source: SourceManga, OnError: Propagate}},
	OpLatestChapters:   {{Source: SourceManga, OnError: Propagate}},
	OpChapterPages:     {{Source: SourceManga, OnError: Propagate}},
	OpMangaStatistics:  {{Source: SourceManga, OnError: SoftFail}},
}

// Delays are the fixed pauses taken before rate-limited calls.
type Delays struct {
	Fallback       time.Duration
	Recommendation time.Duration
}

func (d Delays) duration(kind Delay) time.Duration {
	switch kind {
	case FallbackDelay:
		return d.Fallback
	case RecommendationDelay:
		return d.Recommendation
	default:
		return 0
	}
}

// runner executes policy steps.
type runner struct {
	delays Delays
	wait   func(ctx context.Context, d time.Duration) error
}

func newRunner(delays Delays) *runner {
	return &runner{delays: delays, wait: Sleep}
}

type fetchFunc[T any] func(ctx context.Context) (T, error)

// execute runs op's steps in order against fetchers. fallback is returned by
// a soft-failing step.
func execute[T any](ctx context.Context, r *runner, op Operation, fallback T, fetchers map[Source]fetchFunc[T]) (T, error) {
	var zero T
	steps, ok := Policies[op]
	if !ok || len(steps) == 0 {
		return zero, fmt.Errorf("no policy for operation %q", op)
	}

	var lastErr error
	for _, step := range steps {
		fetch, ok := fetchers[step.Source]
		if !ok {
			return zero, fmt.Errorf("operation %q: no fetcher for source %q", op, step.Source)
		}

		v, err := attempt(ctx, r, step, fetch)
		if err == nil {
			return v, nil
		}

		switch step.OnError {
		case SoftFail:
			slog.Warn("source failed, using default", "operation", op, "source", step.Source, "error", err)
			return fallback, nil
		case FallThrough:
			slog.Warn("source failed, falling back", "operation", op, "source", step.Source, "error", err)
			lastErr = err
		default:
			return zero, err
		}
	}
	return zero, lastErr
}

// attempt takes the step's delay, then calls fetch. A cancelled delay counts
// as the step's failure.
func attempt[T any](ctx context.Context, r *runner, step Step, fetch fetchFunc[T]) (T, error) {
	if d := r.delays.duration(step.Delay); d > 0 {
		if err := r.wait(ctx, d); err != nil {
			var zero T
			return zero, err
		}
	}
	return fetch(ctx)
}
