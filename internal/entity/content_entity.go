package entity

// MediaType distinguishes movies from TV shows in content keys.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Content is the snapshot of catalog metadata stored alongside preferences
// and history entries, so lists render without a catalog round-trip.
type Content struct {
	ID           int       `json:"id"`
	MediaType    MediaType `json:"media_type"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	VoteAverage  float64   `json:"vote_average,omitempty"`
}
