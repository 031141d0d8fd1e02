package normalize

import (
	"fmt"
	"strconv"
	"time"

	"animix-api/internal/anilist"
	"animix-api/internal/models"
)

// AniListAnime maps a primary-catalog media record.
func AniListAnime(m anilist.MediaCore) models.Anime {
	cover := coverImage(m.CoverImage)

	year := m.SeasonYear
	if year == nil && m.StartDate != nil {
		year = m.StartDate.Year
	}

	var duration *string
	if m.Duration != nil && *m.Duration > 0 {
		duration = ptr(fmt.Sprintf("%d min per ep", *m.Duration))
	}

	studios := make([]string, 0, len(m.Studios.Nodes))
	for _, s := range m.Studios.Nodes {
		if s.Name != "" {
			studios = append(studios, s.Name)
		}
	}
	themes := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		if t.Name != "" {
			themes = append(themes, t.Name)
		}
	}

	var rating *string
	if m.AverageScore != nil {
		rating = ptr(strconv.Itoa(*m.AverageScore))
	}

	return models.Anime{
		ID:            strconv.Itoa(m.ID),
		MalID:         positive(m.IDMal),
		Title:         Title(m.Title.English, m.Title.Romaji, m.Title.Native),
		TitleEnglish:  nonEmpty(m.Title.English),
		TitleJapanese: nonEmpty(m.Title.Native),
		Synopsis:      Description(m.Description),
		CoverImage:    cover,
		BannerImage:   firstNonEmpty(m.BannerImage, cover),
		Episodes:      m.Episodes,
		Status:        m.Status,
		Score:         ScoreFromHundred(m.AverageScore),
		Rating:        rating,
		Year:          year,
		Season:        lower(m.Season),
		Studios:       studios,
		Genres:        orEmpty(m.Genres),
		Themes:        themes,
		Type:          m.Format,
		Source:        m.Source,
		Duration:      duration,
		Synonyms:      orEmpty(m.Synonyms),
		Stats: &models.AnimeStats{
			AverageScore: m.AverageScore,
			Popularity:   m.Popularity,
			Favourites:   m.Favourites,
		},
		Aired: models.Aired{
			From: fuzzyDate(m.StartDate),
			To:   fuzzyDate(m.EndDate),
		},
	}
}

// AniListDetail maps a full media record. Secondary-catalog fields are left
// at their empty defaults for the caller to merge.
func AniListDetail(m anilist.MediaDetail) models.AnimeDetail {
	base := AniListAnime(m.MediaCore)
	base.Stats.Trending = m.Trending

	var relations []models.Relation
	if m.Relations != nil {
		relations = AniListRelations(m.Relations.Edges)
	}
	var recommendations []models.Recommendation
	if m.Recommendations != nil {
		recommendations = AniListRecommendations(m.Recommendations.Nodes)
	}

	links := models.ExternalLinks{AniList: ptr(models.AniListAnimeURL + base.ID)}
	if base.MalID != nil {
		links.MAL = ptr(models.MALAnimeURL + strconv.Itoa(*base.MalID))
	}

	return models.AnimeDetail{
		Anime:              base,
		Relations:          orEmpty(relations),
		Recommendations:    orEmpty(recommendations),
		ExternalLinks:      links,
		Producers:          []string{},
		Licensors:          []string{},
		StreamingPlatforms: []models.StreamingService{},
		AdditionalStudios:  []string{},
	}
}

// AniListRelations maps relation edges, dropping edges without a node.
func AniListRelations(edges []anilist.RelationEdge) []models.Relation {
	out := make([]models.Relation, 0, len(edges))
	for _, e := range edges {
		if e.Node == nil || e.Node.ID == 0 {
			continue
		}
		n := e.Node
		var cover *string
		if n.CoverImage != nil {
			cover = firstNonEmpty(n.CoverImage.Medium, n.CoverImage.Large)
		}
		out = append(out, models.Relation{
			ID:           strconv.Itoa(n.ID),
			RelationType: e.RelationType,
			Title:        untitled(n.Title),
			CoverImage:   cover,
			Episodes:     n.Episodes,
			SeasonYear:   n.SeasonYear,
			Season:       lower(n.Season),
			Format:       n.Format,
			Duration:     n.Duration,
		})
	}
	return out
}

// AniListRecommendations maps recommendation nodes, dropping empty ones.
func AniListRecommendations(nodes []anilist.RecommendationNode) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(nodes))
	for _, n := range nodes {
		rec := n.MediaRecommendation
		if rec == nil || rec.ID == 0 {
			continue
		}
		out = append(out, models.Recommendation{
			ID:         strconv.Itoa(rec.ID),
			Title:      untitled(rec.Title),
			CoverImage: coverImage(rec.CoverImage),
			Score:      ScoreFromHundred(rec.AverageScore),
			Votes:      n.Rating,
		})
	}
	return out
}

// AniListPagination maps page info into the listing pagination block.
func AniListPagination(p anilist.PageInfo, count int) models.Pagination {
	hasNext := p.HasNextPage != nil && *p.HasNextPage
	return models.Pagination{
		CurrentPage:     p.CurrentPage,
		HasNextPage:     hasNext,
		LastVisiblePage: p.LastPage,
		Items: &models.PaginationItems{
			Count:   count,
			Total:   p.Total,
			PerPage: p.PerPage,
		},
	}
}

// AniListScheduleEntry maps an airing schedule entry. Weekday and time are
// computed in loc.
func AniListScheduleEntry(s anilist.AiringSchedule, loc *time.Location) models.ScheduleEntry {
	airedAt := time.Unix(s.AiringAt, 0)
	local := airedAt.In(loc)

	entry := models.ScheduleEntry{
		ID:         strconv.Itoa(s.ID),
		Title:      models.UnknownTitle,
		AiringDay:  ptr(local.Weekday().String()),
		AiringTime: ptr(local.Format("15:04")),
		Timezone:   ptr(loc.String()),
		Episode:    ptr(s.Episode),
		AiringAt:   ptr(airedAt.UTC().Format(time.RFC3339)),
	}
	if m := s.Media; m != nil {
		entry.ID = strconv.Itoa(m.ID)
		entry.Title = Title(m.Title.English, m.Title.Romaji, m.Title.Native)
		entry.TitleEnglish = nonEmpty(m.Title.English)
		entry.CoverImage = coverImage(m.CoverImage)
		entry.Episodes = m.Episodes
		entry.Score = ScoreFromHundred(m.AverageScore)
		entry.Type = m.Format
		entry.Year = m.SeasonYear
	}
	return entry
}

// AniListWeeklyEpisode maps an airing entry into the weekly ranking view.
// Entries without media report false.
func AniListWeeklyEpisode(s anilist.AiringSchedule) (models.WeeklyEpisode, bool) {
	if s.Media == nil || s.Media.ID == 0 {
		return models.WeeklyEpisode{}, false
	}
	return models.WeeklyEpisode{
		Anime:        AniListAnime(*s.Media),
		Episode:      s.Episode,
		AiredAt:      time.Unix(s.AiringAt, 0).UTC().Format(time.RFC3339),
		EpisodeTitle: fmt.Sprintf("Episode %d", s.Episode),
	}, true
}

func coverImage(c *anilist.CoverImage) *string {
	if c == nil {
		return nil
	}
	return firstNonEmpty(c.Large, c.Medium)
}

func untitled(t anilist.Title) string {
	if v := firstNonEmpty(t.English, t.Romaji); v != nil {
		return *v
	}
	return models.UntitledTitle
}

func fuzzyDate(d *anilist.FuzzyDate) *string {
	if d == nil || d.Year == nil || d.Month == nil || d.Day == nil {
		return nil
	}
	return ptr(time.Date(*d.Year, time.Month(*d.Month), *d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
}

func positive(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
