package jikan

// ---- Jikan Response Types (internal, not exposed to consumers) ----
//
// Every field the API documents as nullable is a pointer, so a missing value
// is distinguishable from a zero one.

type Pagination struct {
	LastVisiblePage *int             `json:"last_visible_page"`
	HasNextPage     bool             `json:"has_next_page"`
	CurrentPage     *int             `json:"current_page"`
	Items           *PaginationItems `json:"items"`
}

type PaginationItems struct {
	Count   int  `json:"count"`
	Total   *int `json:"total"`
	PerPage *int `json:"per_page"`
}

type ImageSet struct {
	ImageURL      *string `json:"image_url"`
	SmallImageURL *string `json:"small_image_url"`
	LargeImageURL *string `json:"large_image_url"`
}

type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

type TrailerImages struct {
	ImageURL        *string `json:"image_url"`
	LargeImageURL   *string `json:"large_image_url"`
	MaximumImageURL *string `json:"maximum_image_url"`
}

type Trailer struct {
	YoutubeID *string       `json:"youtube_id"`
	URL       *string       `json:"url"`
	EmbedURL  *string       `json:"embed_url"`
	Images    TrailerImages `json:"images"`
}

// Entity is a named reference such as a studio, genre or producer.
type Entity struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type DateProp struct {
	Year *int `json:"year"`
}

type Aired struct {
	From   *string `json:"from"`
	To     *string `json:"to"`
	String *string `json:"string"`
	Prop   struct {
		From DateProp `json:"from"`
		To   DateProp `json:"to"`
	} `json:"prop"`
}

type Broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Anime is the /anime resource. The streaming links are only present on the
// /full variant.
type Anime struct {
	MalID         int        `json:"mal_id"`
	URL           *string    `json:"url"`
	Images        Images     `json:"images"`
	Trailer       *Trailer   `json:"trailer"`
	Title         *string    `json:"title"`
	TitleEnglish  *string    `json:"title_english"`
	TitleJapanese *string    `json:"title_japanese"`
	TitleSynonyms []string   `json:"title_synonyms"`
	Type          *string    `json:"type"`
	Source        *string    `json:"source"`
	Episodes      *int       `json:"episodes"`
	Status        *string    `json:"status"`
	Airing        bool       `json:"airing"`
	Aired         *Aired     `json:"aired"`
	Duration      *string    `json:"duration"`
	Rating        *string    `json:"rating"`
	Score         *float64   `json:"score"`
	ScoredBy      *int       `json:"scored_by"`
	Rank          *int       `json:"rank"`
	Popularity    *int       `json:"popularity"`
	Members       *int       `json:"members"`
	Favorites     *int       `json:"favorites"`
	Synopsis      *string    `json:"synopsis"`
	Season        *string    `json:"season"`
	Year          *int       `json:"year"`
	Broadcast     *Broadcast `json:"broadcast"`
	Producers     []Entity   `json:"producers"`
	Licensors     []Entity   `json:"licensors"`
	Studios       []Entity   `json:"studios"`
	Genres        []Entity   `json:"genres"`
	Themes        []Entity   `json:"themes"`
	Streaming     []Link     `json:"streaming"`
}

type Episode struct {
	MalID         int      `json:"mal_id"`
	URL           *string  `json:"url"`
	Title         *string  `json:"title"`
	TitleJapanese *string  `json:"title_japanese"`
	TitleRomanji  *string  `json:"title_romanji"`
	Aired         *string  `json:"aired"`
	Score         *float64 `json:"score"`
	Filler        bool     `json:"filler"`
	Recap         bool     `json:"recap"`
	ForumURL      *string  `json:"forum_url"`
}

// RecommendationEntry is one entry of /anime/{id}/recommendations. Entry only
// carries mal_id, url, images and title.
type RecommendationEntry struct {
	Entry Anime   `json:"entry"`
	URL   *string `json:"url"`
	Votes *int    `json:"votes"`
}

type AnimeListResponse struct {
	Data       []Anime    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type AnimeResponse struct {
	Data *Anime `json:"data"`
}

type EpisodeListResponse struct {
	Data       []Episode  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type RecommendationsResponse struct {
	Data []RecommendationEntry `json:"data"`
}
