package anilist

// MediaSort mirrors the AniList MediaSort enum. The Go type name is used as the
// GraphQL variable type, so it must not be renamed.
type MediaSort string

// MediaStatus mirrors the AniList MediaStatus enum.
type MediaStatus string

const (
	SortPopularityDesc MediaSort = "POPULARITY_DESC"
	SortFavouritesDesc MediaSort = "FAVOURITES_DESC"

	StatusReleasing      MediaStatus = "RELEASING"
	StatusNotYetReleased MediaStatus = "NOT_YET_RELEASED"
)

// ---- Selection sets ----

type Title struct {
	Romaji  *string `graphql:"romaji"`
	English *string `graphql:"english"`
	Native  *string `graphql:"native"`
}

type CoverImage struct {
	Large  *string `graphql:"large"`
	Medium *string `graphql:"medium"`
}

// FuzzyDate is a date whose parts may each be unknown.
type FuzzyDate struct {
	Year  *int `graphql:"year"`
	Month *int `graphql:"month"`
	Day   *int `graphql:"day"`
}

type Studio struct {
	Name string `graphql:"name"`
}

type StudioConnection struct {
	Nodes []Studio `graphql:"nodes"`
}

type Tag struct {
	Name string `graphql:"name"`
}

// MediaCore is the list selection set shared by every media query.
type MediaCore struct {
	ID           int              `graphql:"id"`
	IDMal        *int             `graphql:"idMal"`
	Title        Title            `graphql:"title"`
	Description  *string          `graphql:"description"`
	CoverImage   *CoverImage      `graphql:"coverImage"`
	BannerImage  *string          `graphql:"bannerImage"`
	Episodes     *int             `graphql:"episodes"`
	Status       *string          `graphql:"status"`
	AverageScore *int             `graphql:"averageScore"`
	Popularity   *int             `graphql:"popularity"`
	Favourites   *int             `graphql:"favourites"`
	Synonyms     []string         `graphql:"synonyms"`
	SeasonYear   *int             `graphql:"seasonYear"`
	Season       *string          `graphql:"season"`
	Genres       []string         `graphql:"genres"`
	Studios      StudioConnection `graphql:"studios(isMain: true)"`
	Tags         []Tag            `graphql:"tags"`
	Format       *string          `graphql:"format"`
	Source       *string          `graphql:"source"`
	Duration     *int             `graphql:"duration"`
	StartDate    *FuzzyDate       `graphql:"startDate"`
	EndDate      *FuzzyDate       `graphql:"endDate"`
}

// MediaDetail extends MediaCore with the relation graph and recommendations.
type MediaDetail struct {
	MediaCore
	Trending        *int                      `graphql:"trending"`
	Relations       *RelationConnection       `graphql:"relations"`
	Recommendations *RecommendationConnection `graphql:"recommendations(perPage: 10, sort: RATING_DESC)"`
}

type RelationConnection struct {
	Edges []RelationEdge `graphql:"edges"`
}

type RelationEdge struct {
	RelationType *string       `graphql:"relationType"`
	Node         *RelatedMedia `graphql:"node"`
}

type RelatedMedia struct {
	ID         int         `graphql:"id"`
	Title      Title       `graphql:"title"`
	CoverImage *CoverImage `graphql:"coverImage"`
	Episodes   *int        `graphql:"episodes"`
	Season     *string     `graphql:"season"`
	SeasonYear *int        `graphql:"seasonYear"`
	Format     *string     `graphql:"format"`
	Duration   *int        `graphql:"duration"`
}

type RecommendationConnection struct {
	Nodes []RecommendationNode `graphql:"nodes"`
}

type RecommendationNode struct {
	Rating              *int              `graphql:"rating"`
	MediaRecommendation *RecommendedMedia `graphql:"mediaRecommendation"`
}

type RecommendedMedia struct {
	ID           int         `graphql:"id"`
	Title        Title       `graphql:"title"`
	CoverImage   *CoverImage `graphql:"coverImage"`
	AverageScore *int        `graphql:"averageScore"`
}

type PageInfo struct {
	Total       *int  `graphql:"total"`
	CurrentPage *int  `graphql:"currentPage"`
	LastPage    *int  `graphql:"lastPage"`
	HasNextPage *bool `graphql:"hasNextPage"`
	PerPage     *int  `graphql:"perPage"`
}

// MediaPage is one page of media results.
type MediaPage struct {
	PageInfo PageInfo    `graphql:"pageInfo"`
	Media    []MediaCore `graphql:"media(type: ANIME, search: $search, id_in: $ids, sort: $sort, status: $status)"`
}

type AiringSchedule struct {
	ID       int        `graphql:"id"`
	AiringAt int64      `graphql:"airingAt"`
	Episode  int        `graphql:"episode"`
	Media    *MediaCore `graphql:"media"`
}

// AiringPage is one page of airing schedule entries.
type AiringPage struct {
	PageInfo        PageInfo         `graphql:"pageInfo"`
	AiringSchedules []AiringSchedule `graphql:"airingSchedules(airingAt_greater: $airingAfter, airingAt_lesser: $airingBefore, sort: TIME_DESC)"`
}

// ---- Query roots ----

type mediaPageQuery struct {
	Page MediaPage `graphql:"Page(page: $page, perPage: $perPage)"`
}

type mediaQuery struct {
	Media *MediaDetail `graphql:"Media(id: $id, type: ANIME)"`
}

type airingPageQuery struct {
	Page AiringPage `graphql:"Page(page: $page, perPage: $perPage)"`
}
