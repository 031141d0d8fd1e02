// Package normalize maps provider payloads into the unified records of
// package models. Every function is total: missing optional fields degrade to
// nil or an empty slice.
package normalize

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"animix-api/internal/models"
)

// StripMarkup removes HTML tags from s. Line breaks become newlines.
func StripMarkup(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text())
}

// Description strips markup and substitutes the placeholder for empty text.
func Description(s *string) string {
	if s == nil {
		return models.NoDescription
	}
	if text := StripMarkup(*s); text != "" {
		return text
	}
	return models.NoDescription
}

// Title applies english, romaji, native precedence.
func Title(english, romaji, native *string) string {
	for _, t := range []*string{english, romaji, native} {
		if t != nil && strings.TrimSpace(*t) != "" {
			return *t
		}
	}
	return models.UnknownTitle
}

// ScoreFromHundred rescales a 0-100 average to 0-10. Zero means unscored.
func ScoreFromHundred(v *int) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	s := clampScore(float64(*v) / 10)
	return &s
}

// ScoreFromTen passes a 0-10 score through, clamped.
func ScoreFromTen(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	s := clampScore(*v)
	return &s
}

func clampScore(s float64) float64 {
	return math.Max(0, math.Min(10, s))
}

// Weekday turns a broadcast day such as "mondays" into "Monday".
func Weekday(day string) string {
	day = strings.TrimSpace(day)
	if day == "" {
		return ""
	}
	day = strings.TrimSuffix(strings.ToLower(day), "s")
	// Casers are stateful, so one is built per call.
	return cases.Title(language.English).String(day)
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func firstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if nonEmpty(v) != nil {
			return v
		}
	}
	return nil
}

func lower(s *string) *string {
	if s == nil {
		return nil
	}
	l := strings.ToLower(*s)
	return &l
}

func ptr[T any](v T) *T {
	return &v
}
