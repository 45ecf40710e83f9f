package models

// MediaType distinguishes feature films from TV series.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType maps a wire token to a MediaType.
func ParseMediaType(s string) (MediaType, bool) {
	switch s {
	case string(MediaTypeMovie):
		return MediaTypeMovie, true
	case string(MediaTypeTV):
		return MediaTypeTV, true
	}
	return "", false
}

// Movie is a single movie or series as known to the metadata provider,
// optionally annotated with the requesting user's own rating.
type Movie struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	Rating    float64   `json:"rating,omitempty"` // provider average, 0-10
	Overview  string    `json:"overview,omitempty"`
	PosterURL string    `json:"posterUrl,omitempty"`
	PageURL   string    `json:"pageUrl,omitempty"`
	MediaType MediaType `json:"mediaType"`

	// UserRating is set only when rendering a watched item for a
	// specific user. Nil means not rated yet.
	UserRating *int `json:"userRating,omitempty"`
}
