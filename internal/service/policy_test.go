package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPolicies(t *testing.T) {
	fallbackEligible := map[Operation]bool{OpTopAnime: true, OpSchedule: true}
	softFail := map[Operation]bool{
		OpDetailEnrichment: true,
		OpRecommendations:  true,
		OpFamous:           true,
		OpTopEpisodes:      true,
		OpMangaStatistics:  true,
	}

	for op, steps := range Policies {
		t.Run(string(op), func(t *testing.T) {
			if len(steps) == 0 {
				t.Fatal("no steps")
			}
			last := steps[len(steps)-1]
			switch {
			case fallbackEligible[op]:
				if len(steps) != 2 {
					t.Fatalf("got %d steps, want 2", len(steps))
				}
				if steps[0].Source != SourcePrimary || steps[0].OnError != FallThrough {
					t.Errorf("first step = %+v, want primary falling through", steps[0])
				}
				if last.Source != SourceSecondary || last.OnError != Propagate || last.Delay != FallbackDelay {
					t.Errorf("last step = %+v, want delayed secondary propagating", last)
				}
			case softFail[op]:
				if last.OnError != SoftFail {
					t.Errorf("got %v, want soft fail", last.OnError)
				}
			default:
				if len(steps) != 1 || last.OnError != Propagate {
					t.Errorf("got %+v, want a single propagating step", steps)
				}
			}
		})
	}

	if got := Policies[OpRecommendations][0].Delay; got != RecommendationDelay {
		t.Errorf("recommendations delay = %v, want RecommendationDelay", got)
	}
}

type waitRecorder struct {
	waits []time.Duration
	err   error
}

func (w *waitRecorder) wait(_ context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	return w.err
}

func TestExecute(t *testing.T) {
	errPrimary := errors.New("primary down")
	errSecondary := errors.New("secondary down")

	ok := func(v string) fetchFunc[string] {
		return func(context.Context) (string, error) { return v, nil }
	}
	fail := func(err error) fetchFunc[string] {
		return func(context.Context) (string, error) { return "", err }
	}

	tests := []struct {
		name      string
		op        Operation
		fetchers  map[Source]fetchFunc[string]
		waitErr   error
		want      string
		wantErr   error
		wantWaits []time.Duration
	}{
		{
			name:     "primary succeeds without delay",
			op:       OpTopAnime,
			fetchers: map[Source]fetchFunc[string]{SourcePrimary: ok("primary"), SourceSecondary: ok("secondary")},
			want:     "primary",
		},
		{
			name:      "falls back after delay",
			op:        OpTopAnime,
			fetchers:  map[Source]fetchFunc[string]{SourcePrimary: fail(errPrimary), SourceSecondary: ok("secondary")},
			want:      "secondary",
			wantWaits: []time.Duration{500 * time.Millisecond},
		},
		{
			name:      "both fail returns secondary error",
			op:        OpSchedule,
			fetchers:  map[Source]fetchFunc[string]{SourcePrimary: fail(errPrimary), SourceSecondary: fail(errSecondary)},
			wantErr:   errSecondary,
			wantWaits: []time.Duration{500 * time.Millisecond},
		},
		{
			name:      "cancelled delay fails the fallback",
			op:        OpTopAnime,
			fetchers:  map[Source]fetchFunc[string]{SourcePrimary: fail(errPrimary), SourceSecondary: ok("secondary")},
			waitErr:   context.Canceled,
			wantErr:   context.Canceled,
			wantWaits: []time.Duration{500 * time.Millisecond},
		},
		{
			name:     "propagate returns error",
			op:       OpSearchAnime,
			fetchers: map[Source]fetchFunc[string]{SourcePrimary: fail(errPrimary)},
			wantErr:  errPrimary,
		},
		{
			name:      "soft fail returns fallback",
			op:        OpRecommendations,
			fetchers:  map[Source]fetchFunc[string]{SourceSecondary: fail(errSecondary)},
			want:      "fallback",
			wantWaits: []time.Duration{time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &waitRecorder{err: tt.waitErr}
			r := &runner{
				delays: Delays{Fallback: 500 * time.Millisecond, Recommendation: time.Second},
				wait:   rec.wait,
			}

			got, err := execute(context.Background(), r, tt.op, "fallback", tt.fetchers)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(rec.waits) != len(tt.wantWaits) {
				t.Fatalf("waits = %v, want %v", rec.waits, tt.wantWaits)
			}
			for i := range rec.waits {
				if rec.waits[i] != tt.wantWaits[i] {
					t.Errorf("wait %d = %v, want %v", i, rec.waits[i], tt.wantWaits[i])
				}
			}
		})
	}
}

func TestExecuteMisconfigured(t *testing.T) {
	r := newRunner(Delays{})

	if _, err := execute(context.Background(), r, Operation("unknown"), 0, map[Source]fetchFunc[int]{}); err == nil {
		t.Error("expected error for unknown operation")
	}
	if _, err := execute(context.Background(), r, OpSearchAnime, 0, map[Source]fetchFunc[int]{}); err == nil {
		t.Error("expected error for missing fetcher")
	}
}

func TestSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled sleep took %v", elapsed)
	}

	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
