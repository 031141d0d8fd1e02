package normalize

import (
	"fmt"
	"sort"
	"strings"

	"animix-api/internal/mangadex"
	"animix-api/internal/models"
)

// MangaDexManga maps a manga record. stats may be nil; uploadsURL is the
// cover host.
func MangaDexManga(m mangadex.Manga, stats *models.Statistics, uploadsURL string) models.Manga {
	attrs := m.Attributes

	orig := "ja"
	if attrs.OriginalLanguage != nil && *attrs.OriginalLanguage != "" {
		orig = strings.ToLower(*attrs.OriginalLanguage)
	}
	nativeLangs := []string{orig}
	if orig == "ja" {
		nativeLangs = append(nativeLangs, "jp")
	}
	romajiLangs := []string{orig + "-ro"}
	if orig != "ja" {
		romajiLangs = append(romajiLangs, "ja-ro")
	}

	english := localizedAny(attrs, "en")
	romaji := localized(attrs.Title, append(romajiLangs, nativeLangs...)...)
	if romaji == nil {
		romaji = localizedAlt(attrs.AltTitles, romajiLangs...)
	}
	native := localizedAny(attrs, nativeLangs...)

	display := Title(english, romaji, native)
	if display == models.UnknownTitle {
		if t := firstLocalized(attrs.Title); t != nil {
			display = *t
		}
	}

	var description *string
	if d, ok := attrs.Description.Get("en"); ok {
		description = &d
	}

	var genres, tags []string
	for _, t := range attrs.Tags {
		name, ok := t.Attributes.Name.Get("en")
		if !ok {
			continue
		}
		tags = append(tags, name)
		if t.Attributes.Group == "genre" {
			genres = append(genres, name)
		}
	}

	var image, cover *string
	if rel, ok := m.Relationship(mangadex.RelCoverArt); ok {
		if file := rel.CoverFileName(); file != "" {
			base := fmt.Sprintf("%s/covers/%s/%s", strings.TrimRight(uploadsURL, "/"), m.ID, file)
			image = ptr(base + ".512.jpg")
			cover = ptr(base)
		}
	}

	if stats == nil {
		stats = &models.Statistics{}
	}

	return models.Manga{
		ID:              m.ID,
		Title:           models.MangaTitle{English: english, Romaji: romaji, Native: native},
		DisplayTitle:    display,
		Description:     Description(description),
		Status:          attrs.Status,
		Genres:          orEmpty(genres),
		Tags:            orEmpty(tags),
		Image:           image,
		Cover:           cover,
		Rating:          stats.Rating,
		RatingVotes:     stats.RatingVotes,
		Follows:         stats.Follows,
		LastChapter:     nonEmpty(attrs.LastChapter),
		PublicationYear: attrs.Year,
		Demographic:     attrs.PublicationDemographic,
		ContentRating:   attrs.ContentRating,
	}
}

// MangaDexAuthors collects author and artist names in relationship order,
// without duplicates.
func MangaDexAuthors(m mangadex.Manga) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, rel := range m.Relationships {
		if rel.Type != mangadex.RelAuthor && rel.Type != mangadex.RelArtist {
			continue
		}
		if name := rel.Name(); name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// MangaDexChapter maps a chapter record.
func MangaDexChapter(c mangadex.Chapter) models.Chapter {
	attrs := c.Attributes
	label := models.NoChapterLabel
	if ch := nonEmpty(attrs.Chapter); ch != nil {
		label = *ch
	}
	return models.Chapter{
		ID:                 c.ID,
		Title:              nonEmpty(attrs.Title),
		Chapter:            label,
		Volume:             nonEmpty(attrs.Volume),
		Pages:              attrs.Pages,
		ReadableAt:         firstNonEmpty(attrs.ReadableAt, attrs.PublishAt),
		TranslatedLanguage: nonEmpty(attrs.TranslatedLanguage),
	}
}

// MangaDexStatistics maps one statistics entry. The vote count falls back to
// the sum of the rating distribution.
func MangaDexStatistics(s mangadex.MangaStatistics) models.Statistics {
	out := models.Statistics{Follows: s.Follows}
	if r := s.Rating; r != nil {
		out.Rating = ScoreFromTen(r.Bayesian)
		switch {
		case r.Votes != nil:
			out.RatingVotes = r.Votes
		case r.Distribution != nil:
			total := 0
			for _, n := range r.Distribution {
				total += n
			}
			out.RatingVotes = &total
		}
	}
	return out
}

// ChapterPages builds one absolute URL per page file, 1-indexed.
func ChapterPages(chapterID, baseURL, hash string, files []string) models.ChapterPages {
	pages := make([]models.PageImage, 0, len(files))
	for i, file := range files {
		pages = append(pages, models.PageImage{
			Index: i + 1,
			URL:   fmt.Sprintf("%s/data/%s/%s", strings.TrimRight(baseURL, "/"), hash, file),
		})
	}
	return models.ChapterPages{ChapterID: chapterID, Pages: pages, PageCount: len(pages)}
}

// localizedAny looks in the main title, then in the alternative titles.
func localizedAny(attrs mangadex.MangaAttributes, langs ...string) *string {
	if v := localized(attrs.Title, langs...); v != nil {
		return v
	}
	return localizedAlt(attrs.AltTitles, langs...)
}

func localizedAlt(alts []mangadex.LocalizedString, langs ...string) *string {
	for _, alt := range alts {
		if v := localized(alt, langs...); v != nil {
			return v
		}
	}
	return nil
}

// firstLocalized returns the first non-empty entry in language-code order.
func firstLocalized(l mangadex.LocalizedString) *string {
	langs := make([]string, 0, len(l))
	for lang := range l {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if v := strings.TrimSpace(l[lang]); v != "" {
			return &v
		}
	}
	return nil
}

func localized(l mangadex.LocalizedString, langs ...string) *string {
	if v, ok := l.Get(langs...); ok {
		return &v
	}
	return nil
}
