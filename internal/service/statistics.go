package service

import (
	"context"

	"animix-api/internal/models"
	"animix-api/internal/normalize"
)

// StatisticsEnricher fetches aggregate manga statistics. It never fails:
// a provider error yields an empty map.
type StatisticsEnricher struct {
	source StatisticsSource
	run    *runner
}

// NewStatisticsEnricher creates a new statistics enricher.
func NewStatisticsEnricher(source StatisticsSource) *StatisticsEnricher {
	return &StatisticsEnricher{source: source, run: newRunner(Delays{})}
}

// Fetch returns statistics keyed by manga id. Duplicate and empty ids are
// dropped; an empty set makes no request.
func (e *StatisticsEnricher) Fetch(ctx context.Context, ids []string) map[string]models.Statistics {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return map[string]models.Statistics{}
	}

	stats, _ := execute(ctx, e.run, OpMangaStatistics, map[string]models.Statistics{}, map[Source]fetchFunc[map[string]models.Statistics]{
		SourceManga: func(ctx context.Context) (map[string]models.Statistics, error) {
			raw, err := e.source.Statistics(ctx, unique)
			if err != nil {
				return nil, err
			}
			out := make(map[string]models.Statistics, len(raw))
			for id, s := range raw {
				out[id] = normalize.MangaDexStatistics(s)
			}
			return out, nil
		},
	})
	return stats
}

// lookup returns the statistics of id, or nil when absent.
func lookup(stats map[string]models.Statistics, id string) *models.Statistics {
	if s, ok := stats[id]; ok {
		return &s
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
