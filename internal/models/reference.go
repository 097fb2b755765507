package models

// Genre is a static reference row consulted when validating film genres.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MpaRating is a static reference row for the MPA age rating catalog.
type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
