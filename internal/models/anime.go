package models

// Anime is the unified anime record built from either catalog.
type Anime struct {
	ID            string      `json:"id"`
	MalID         *int        `json:"malId"`
	Title         string      `json:"title"`
	TitleEnglish  *string     `json:"titleEnglish"`
	TitleJapanese *string     `json:"titleJapanese"`
	Synopsis      string      `json:"synopsis"`
	CoverImage    *string     `json:"coverImage"`
	BannerImage   *string     `json:"bannerImage"`
	Episodes      *int        `json:"episodes"`
	Status        *string     `json:"status"`
	Score         *float64    `json:"score"`
	Rating        *string     `json:"rating"`
	Year          *int        `json:"year"`
	Season        *string     `json:"season"`
	Studios       []string    `json:"studios"`
	Genres        []string    `json:"genres"`
	Themes        []string    `json:"themes"`
	Type          *string     `json:"type"`
	Source        *string     `json:"source"`
	Duration      *string     `json:"duration"`
	Synonyms      []string    `json:"synonyms"`
	Stats         *AnimeStats `json:"stats"`
	Aired         Aired       `json:"aired"`
}

// AnimeStats carries the primary catalog's raw counters. Secondary-catalog
// records leave it nil.
type AnimeStats struct {
	AverageScore *int `json:"averageScore"`
	Popularity   *int `json:"popularity"`
	Favourites   *int `json:"favourites"`
	Trending     *int `json:"trending"`
}

// Aired is the airing date range, as ISO dates.
type Aired struct {
	From   *string `json:"from"`
	To     *string `json:"to"`
	String *string `json:"string"`
}

// AnimeDetail is the primary record merged with relations, recommendations and
// secondary-catalog enrichment.
type AnimeDetail struct {
	Anime
	Relations          []Relation         `json:"relations"`
	Recommendations    []Recommendation   `json:"recommendations"`
	ExternalLinks      ExternalLinks      `json:"externalLinks"`
	Producers          []string           `json:"producers"`
	Licensors          []string           `json:"licensors"`
	StreamingPlatforms []StreamingService `json:"streamingPlatforms"`
	Broadcast          *Broadcast         `json:"broadcast"`
	Trailer            *Trailer           `json:"trailer"`
	MalStats           *MalStats          `json:"malStats"`
	AdditionalStudios  []string           `json:"additionalStudios"`
}

// ExternalLinks point at the record on each catalog's website.
type ExternalLinks struct {
	AniList *string `json:"anilist"`
	MAL     *string `json:"mal"`
}

type StreamingService struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

type Trailer struct {
	URL       string  `json:"url"`
	Site      *string `json:"site"`
	Thumbnail *string `json:"thumbnail"`
}

// MalStats are the secondary catalog's ranking counters.
type MalStats struct {
	Rank       *int     `json:"rank"`
	Popularity *int     `json:"popularity"`
	Members    *int     `json:"members"`
	Favorites  *int     `json:"favorites"`
	Score      *float64 `json:"score"`
	ScoredBy   *int     `json:"scoredBy"`
}

// Enrichment is the subset of secondary-catalog data merged into AnimeDetail.
type Enrichment struct {
	Producers          []string
	Licensors          []string
	Studios            []string
	StreamingPlatforms []StreamingService
	Broadcast          *Broadcast
	Trailer            *Trailer
	MalStats           *MalStats
}

// Relation is one edge of a media's relation graph.
type Relation struct {
	ID           string  `json:"id"`
	RelationType *string `json:"relationType"`
	Title        string  `json:"title"`
	CoverImage   *string `json:"coverImage"`
	Episodes     *int    `json:"episodes"`
	SeasonYear   *int    `json:"seasonYear"`
	Season       *string `json:"season"`
	Format       *string `json:"format"`
	Duration     *int    `json:"duration"`
}

type Recommendation struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	CoverImage *string  `json:"coverImage"`
	Score      *float64 `json:"score"`
	Votes      *int     `json:"votes"`
}

type Episode struct {
	ID            string   `json:"id"`
	Number        int      `json:"number"`
	Title         *string  `json:"title"`
	TitleJapanese *string  `json:"titleJapanese"`
	TitleRomanji  *string  `json:"titleRomanji"`
	Aired         *string  `json:"aired"`
	Score         *float64 `json:"score"`
	Filler        bool     `json:"filler"`
	Recap         bool     `json:"recap"`
	ForumURL      *string  `json:"forumUrl"`
}

type ScheduleEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	TitleEnglish *string  `json:"titleEnglish"`
	CoverImage   *string  `json:"coverImage"`
	AiringDay    *string  `json:"airingDay"`
	AiringTime   *string  `json:"airingTime"`
	Timezone     *string  `json:"timezone"`
	Episodes     *int     `json:"episodes"`
	Score        *float64 `json:"score"`
	Type         *string  `json:"type"`
	Year         *int     `json:"year"`
	Episode      *int     `json:"episode"`
	AiringAt     *string  `json:"airingAt"`
}

// WeeklyEpisode is one entry of the "top episodes of the week" view.
type WeeklyEpisode struct {
	Anime
	Episode      int    `json:"episode"`
	AiredAt      string `json:"airedAt"`
	EpisodeTitle string `json:"episodeTitle"`
}

// Pagination mirrors the secondary catalog's pagination block, which the
// frontend consumes for every anime listing.
type Pagination struct {
	CurrentPage     *int             `json:"current_page"`
	HasNextPage     bool             `json:"has_next_page"`
	LastVisiblePage *int             `json:"last_visible_page"`
	Items           *PaginationItems `json:"items"`
}

type PaginationItems struct {
	Count   int  `json:"count"`
	Total   *int `json:"total"`
	PerPage *int `json:"per_page"`
}

type AnimeList struct {
	Results    []Anime    `json:"results"`
	Pagination Pagination `json:"pagination"`
}

type EpisodeList struct {
	Results    []Episode  `json:"results"`
	Pagination Pagination `json:"pagination"`
}

type Schedule struct {
	Results    []ScheduleEntry `json:"results"`
	Pagination Pagination      `json:"pagination"`
}

type WeeklyEpisodes struct {
	Results []WeeklyEpisode `json:"results"`
}

// TopAnimeParams holds query parameters for the top anime listing.
type TopAnimeParams struct {
	Type   string `query:"type"`
	Filter string `query:"filter"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Validate sets defaults and clamps parameters.
func (p *TopAnimeParams) Validate() {
	if p.Type == "" {
		p.Type = "anime"
	}
	if p.Filter == "" {
		p.Filter = "airing"
	}
	p.Page, p.Limit = clampPage(p.Page, p.Limit, 20, 50)
}

// SearchParams holds free-text search parameters for both catalogs.
type SearchParams struct {
	Query string `query:"q"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

// Validate sets defaults and clamps parameters.
func (p *SearchParams) Validate() {
	p.Page, p.Limit = clampPage(p.Page, p.Limit, 20, 50)
}

func clampPage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

const (
	AniListAnimeURL = "https://anilist.co/anime/"
	MALAnimeURL     = "https://myanimelist.net/anime/"
	NoDescription   = "No description available."
	UnknownTitle    = "Unknown"
	UntitledTitle   = "Untitled"
)
