package mangadex

import (
	"bytes"
	"encoding/json"
)

// LocalizedString maps a language code to text. The API encodes an empty map
// as [], which decodes to an empty LocalizedString.
type LocalizedString map[string]string

func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.HasPrefix(data, []byte("[")) {
		*l = LocalizedString{}
		return nil
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// Get returns the first non-empty value among the given language codes.
func (l LocalizedString) Get(langs ...string) (string, bool) {
	for _, lang := range langs {
		if v, ok := l[lang]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Relationship is a typed reference to another resource. Attributes are only
// present when the relationship was expanded with includes[].
type Relationship struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Related    string          `json:"related,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

const (
	RelCoverArt = "cover_art"
	RelAuthor   = "author"
	RelArtist   = "artist"
	RelManga    = "manga"
)

// HasAttributes reports whether the relationship was expanded.
func (r Relationship) HasAttributes() bool {
	a := bytes.TrimSpace(r.Attributes)
	return len(a) > 0 && !bytes.Equal(a, []byte("null"))
}

// CoverFileName returns the file name of an expanded cover_art relationship.
func (r Relationship) CoverFileName() string {
	var attrs struct {
		FileName string `json:"fileName"`
	}
	if !r.HasAttributes() || json.Unmarshal(r.Attributes, &attrs) != nil {
		return ""
	}
	return attrs.FileName
}

// Name returns the name of an expanded author or artist relationship.
func (r Relationship) Name() string {
	var attrs struct {
		Name string `json:"name"`
	}
	if !r.HasAttributes() || json.Unmarshal(r.Attributes, &attrs) != nil {
		return ""
	}
	return attrs.Name
}

// Manga returns the expanded manga of a manga relationship.
func (r Relationship) Manga() (Manga, bool) {
	if r.Type != RelManga || !r.HasAttributes() {
		return Manga{}, false
	}
	var attrs MangaAttributes
	if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
		return Manga{}, false
	}
	return Manga{ID: r.ID, Type: r.Type, Attributes: attrs}, true
}

type TagAttributes struct {
	Name  LocalizedString `json:"name"`
	Group string          `json:"group"`
}

type Tag struct {
	ID         string        `json:"id"`
	Attributes TagAttributes `json:"attributes"`
}

type MangaAttributes struct {
	Title                  LocalizedString   `json:"title"`
	AltTitles              []LocalizedString `json:"altTitles"`
	Description            LocalizedString   `json:"description"`
	Status                 *string           `json:"status"`
	Year                   *int              `json:"year"`
	ContentRating          *string           `json:"contentRating"`
	PublicationDemographic *string           `json:"publicationDemographic"`
	LastChapter            *string           `json:"lastChapter"`
	OriginalLanguage       *string           `json:"originalLanguage"`
	Tags                   []Tag             `json:"tags"`
}

type Manga struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Attributes    MangaAttributes `json:"attributes"`
	Relationships []Relationship  `json:"relationships"`
}

// Relationship returns the first relationship of the given type.
func (m Manga) Relationship(relType string) (Relationship, bool) {
	for _, r := range m.Relationships {
		if r.Type == relType {
			return r, true
		}
	}
	return Relationship{}, false
}

type MangaList struct {
	Result string  `json:"result"`
	Data   []Manga `json:"data"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

type MangaResponse struct {
	Result string `json:"result"`
	Data   *Manga `json:"data"`
}

type ChapterAttributes struct {
	Title              *string `json:"title"`
	Volume             *string `json:"volume"`
	Chapter            *string `json:"chapter"`
	Pages              int     `json:"pages"`
	TranslatedLanguage *string `json:"translatedLanguage"`
	ReadableAt         *string `json:"readableAt"`
	PublishAt          *string `json:"publishAt"`
}

type Chapter struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    ChapterAttributes `json:"attributes"`
	Relationships []Relationship    `json:"relationships"`
}

type ChapterList struct {
	Result string    `json:"result"`
	Data   []Chapter `json:"data"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Total  int       `json:"total"`
}

type Rating struct {
	Average      *float64       `json:"average"`
	Bayesian     *float64       `json:"bayesian"`
	Votes        *int           `json:"votes"`
	Distribution map[string]int `json:"distribution"`
}

type MangaStatistics struct {
	Rating  *Rating `json:"rating"`
	Follows *int    `json:"follows"`
}

type StatisticsResponse struct {
	Result     string                     `json:"result"`
	Statistics map[string]MangaStatistics `json:"statistics"`
}

type AtHomeChapter struct {
	Hash string   `json:"hash"`
	Data []string `json:"data"`
}

// AtHomeServer is the page delivery descriptor of one chapter.
type AtHomeServer struct {
	Result  string         `json:"result"`
	BaseURL string         `json:"baseUrl"`
	Chapter *AtHomeChapter `json:"chapter"`
}
