package normalize

import (
	"strconv"

	"animix-api/internal/jikan"
	"animix-api/internal/models"
)

// JikanAnime maps a secondary-catalog anime record.
func JikanAnime(a jikan.Anime) models.Anime {
	cover := firstNonEmpty(a.Images.JPG.LargeImageURL, a.Images.JPG.ImageURL)

	var trailerImage *string
	if a.Trailer != nil {
		trailerImage = a.Trailer.Images.MaximumImageURL
	}

	aired := models.Aired{}
	year := a.Year
	if a.Aired != nil {
		aired = models.Aired{From: a.Aired.From, To: a.Aired.To, String: a.Aired.String}
		if year == nil {
			year = a.Aired.Prop.From.Year
		}
	}

	return models.Anime{
		ID:            strconv.Itoa(a.MalID),
		MalID:         positive(&a.MalID),
		Title:         Title(a.TitleEnglish, a.Title, a.TitleJapanese),
		TitleEnglish:  nonEmpty(a.TitleEnglish),
		TitleJapanese: nonEmpty(a.TitleJapanese),
		Synopsis:      Description(a.Synopsis),
		CoverImage:    cover,
		BannerImage:   firstNonEmpty(trailerImage, cover),
		Episodes:      a.Episodes,
		Status:        a.Status,
		Score:         ScoreFromTen(a.Score),
		Rating:        a.Rating,
		Year:          year,
		Season:        a.Season,
		Studios:       entityNames(a.Studios),
		Genres:        entityNames(a.Genres),
		Themes:        entityNames(a.Themes),
		Type:          a.Type,
		Source:        a.Source,
		Duration:      a.Duration,
		Synonyms:      orEmpty(a.TitleSynonyms),
		Aired:         aired,
	}
}

// JikanAnimeList maps a listing page.
func JikanAnimeList(resp *jikan.AnimeListResponse) models.AnimeList {
	results := make([]models.Anime, 0, len(resp.Data))
	for _, a := range resp.Data {
		results = append(results, JikanAnime(a))
	}
	return models.AnimeList{Results: results, Pagination: JikanPagination(resp.Pagination)}
}

// JikanPagination copies the pagination block.
func JikanPagination(p jikan.Pagination) models.Pagination {
	out := models.Pagination{
		CurrentPage:     p.CurrentPage,
		HasNextPage:     p.HasNextPage,
		LastVisiblePage: p.LastVisiblePage,
	}
	if p.Items != nil {
		out.Items = &models.PaginationItems{Count: p.Items.Count, Total: p.Items.Total, PerPage: p.Items.PerPage}
	}
	return out
}

// JikanScheduleEntry maps a broadcast schedule item. The airing day and time
// come from the broadcast block, in the broadcast's own time zone.
func JikanScheduleEntry(a jikan.Anime) models.ScheduleEntry {
	entry := models.ScheduleEntry{
		ID:           strconv.Itoa(a.MalID),
		Title:        Title(a.TitleEnglish, a.Title, a.TitleJapanese),
		TitleEnglish: nonEmpty(a.TitleEnglish),
		CoverImage:   firstNonEmpty(a.Images.JPG.LargeImageURL, a.Images.JPG.ImageURL),
		Episodes:     a.Episodes,
		Score:        ScoreFromTen(a.Score),
		Type:         a.Type,
		Year:         a.Year,
	}
	if b := a.Broadcast; b != nil {
		if d := nonEmpty(b.Day); d != nil {
			entry.AiringDay = ptr(Weekday(*d))
		}
		entry.AiringTime = nonEmpty(b.Time)
		entry.Timezone = nonEmpty(b.Timezone)
	}
	return entry
}

// JikanEpisode maps an episode record.
func JikanEpisode(e jikan.Episode) models.Episode {
	return models.Episode{
		ID:            strconv.Itoa(e.MalID),
		Number:        e.MalID,
		Title:         nonEmpty(e.Title),
		TitleJapanese: nonEmpty(e.TitleJapanese),
		TitleRomanji:  nonEmpty(e.TitleRomanji),
		Aired:         e.Aired,
		Score:         ScoreFromTen(e.Score),
		Filler:        e.Filler,
		Recap:         e.Recap,
		ForumURL:      e.ForumURL,
	}
}

// JikanRecommendation maps a user recommendation entry. The entry carries no
// score.
func JikanRecommendation(r jikan.RecommendationEntry) models.Recommendation {
	e := r.Entry
	return models.Recommendation{
		ID:         strconv.Itoa(e.MalID),
		Title:      Title(e.TitleEnglish, e.Title, e.TitleJapanese),
		CoverImage: firstNonEmpty(e.Images.JPG.LargeImageURL, e.Images.JPG.ImageURL),
		Votes:      r.Votes,
	}
}

// JikanEnrichment extracts the fields merged into a primary detail record.
func JikanEnrichment(a jikan.Anime) models.Enrichment {
	streaming := make([]models.StreamingService, 0, len(a.Streaming))
	for _, s := range a.Streaming {
		if s.Name != "" && s.URL != "" {
			streaming = append(streaming, models.StreamingService{Name: s.Name, URL: s.URL})
		}
	}

	var trailer *models.Trailer
	if a.Trailer != nil && nonEmpty(a.Trailer.URL) != nil {
		trailer = &models.Trailer{
			URL:       *a.Trailer.URL,
			Site:      ptr("youtube"),
			Thumbnail: firstNonEmpty(a.Trailer.Images.MaximumImageURL, a.Trailer.Images.LargeImageURL),
		}
	}

	var broadcast *models.Broadcast
	if b := a.Broadcast; b != nil {
		broadcast = &models.Broadcast{Day: b.Day, Time: b.Time, Timezone: b.Timezone, String: b.String}
	}

	return models.Enrichment{
		Producers:          entityNames(a.Producers),
		Licensors:          entityNames(a.Licensors),
		Studios:            entityNames(a.Studios),
		StreamingPlatforms: streaming,
		Broadcast:          broadcast,
		Trailer:            trailer,
		MalStats: &models.MalStats{
			Rank:       a.Rank,
			Popularity: a.Popularity,
			Members:    a.Members,
			Favorites:  a.Favorites,
			Score:      ScoreFromTen(a.Score),
			ScoredBy:   a.ScoredBy,
		},
	}
}

// MergeEnrichment copies secondary-catalog fields into d.
func MergeEnrichment(d *models.AnimeDetail, e models.Enrichment) {
	d.Producers = orEmpty(e.Producers)
	d.Licensors = orEmpty(e.Licensors)
	d.AdditionalStudios = orEmpty(e.Studios)
	d.StreamingPlatforms = orEmpty(e.StreamingPlatforms)
	d.Broadcast = e.Broadcast
	d.Trailer = e.Trailer
	d.MalStats = e.MalStats
}

func entityNames(entities []jikan.Entity) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}
