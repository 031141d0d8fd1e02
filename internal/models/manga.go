package models

// MangaTitle holds the three title variants exposed to the frontend.
type MangaTitle struct {
	English *string `json:"english"`
	Romaji  *string `json:"romaji"`
	Native  *string `json:"native"`
}

// Manga is the unified manga record.
type Manga struct {
	ID              string     `json:"id"`
	Title           MangaTitle `json:"title"`
	DisplayTitle    string     `json:"displayTitle"`
	Description     string     `json:"description"`
	Status          *string    `json:"status"`
	Genres          []string   `json:"genres"`
	Tags            []string   `json:"tags"`
	Image           *string    `json:"image"`
	Cover           *string    `json:"cover"`
	Rating          *float64   `json:"rating"`
	RatingVotes     *int       `json:"ratingVotes"`
	Follows         *int       `json:"follows"`
	LastChapter     *string    `json:"lastChapter"`
	PublicationYear *int       `json:"publicationYear"`
	Demographic     *string    `json:"demographic"`
	ContentRating   *string    `json:"contentRating"`
}

// MangaDetail adds creator names to a manga record.
type MangaDetail struct {
	Manga
	Authors []string `json:"authors"`
}

// Statistics are the aggregate counters merged into manga records. A missing
// entry means every field is nil.
type Statistics struct {
	Rating      *float64 `json:"rating"`
	RatingVotes *int     `json:"ratingVotes"`
	Follows     *int     `json:"follows"`
}

type Chapter struct {
	ID                 string  `json:"id"`
	Title              *string `json:"title"`
	Chapter            string  `json:"chapter"`
	Volume             *string `json:"volume"`
	Pages              int     `json:"pages"`
	ReadableAt         *string `json:"readableAt"`
	TranslatedLanguage *string `json:"translatedLanguage"`
}

// LatestChapter is a chapter with a summary of the manga it belongs to.
type LatestChapter struct {
	Chapter
	Manga *Manga `json:"manga"`
}

type MangaPage struct {
	Results     []Manga `json:"results"`
	Total       int     `json:"total"`
	Limit       int     `json:"limit"`
	Page        int     `json:"page"`
	HasNextPage bool    `json:"hasNextPage"`
}

type ChapterPage struct {
	Results     []Chapter `json:"results"`
	Total       int       `json:"total"`
	Limit       int       `json:"limit"`
	Page        int       `json:"page"`
	HasNextPage bool      `json:"hasNextPage"`
}

type LatestChapters struct {
	Results []LatestChapter `json:"results"`
}

type PageImage struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

type ChapterPages struct {
	ChapterID string      `json:"chapterId"`
	Pages     []PageImage `json:"pages"`
	PageCount int         `json:"pageCount"`
}

// MangaListParams holds query parameters for manga listings.
type MangaListParams struct {
	Query string `query:"query"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

// Validate sets defaults and clamps parameters. The provider caps page size
// at 100.
func (p *MangaListParams) Validate(defaultLimit int) {
	p.Page, p.Limit = clampPage(p.Page, p.Limit, defaultLimit, 100)
}

// HasNextPage reports whether another page exists after offset+limit.
func HasNextPage(offset, limit, total int) bool {
	return offset+limit < total
}

// Offset converts a 1-indexed page into a provider offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

const NoChapterLabel = "—"
