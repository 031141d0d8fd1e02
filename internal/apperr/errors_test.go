package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: Validation("query is required"), want: KindValidation},
		{name: "not found", err: NotFound("mangadex", "manga %s", "abc"), want: KindNotFound},
		{name: "upstream", err: Upstream("jikan", "fetch top", base), want: KindUpstream},
		{name: "wrapped upstream", err: fmt.Errorf("top anime: %w", Upstream("jikan", "", base)), want: KindUpstream},
		{name: "plain error", err: base, want: 0},
		{name: "nil", err: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpstreamUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := Upstream("anilist", "media page", base)

	if !errors.Is(err, base) {
		t.Fatalf("errors.Is(%v, base) = false, want true", err)
	}
	if got, want := err.Error(), "anilist upstream: media page: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
