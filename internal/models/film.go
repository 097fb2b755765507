package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxDescriptionLength = 200

// earliestReleaseDate is the day before the first film screening; release
// dates must be strictly after it.
var earliestReleaseDate = time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC)

type Film struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         *MpaRating `json:"mpa,omitempty"`
	Genres      []Genre    `json:"genres"`
	Likes       []int      `json:"likes"`
}

// DedupedGenreIDs returns the film's genre ids with duplicates collapsed,
// preserving first-seen order.
func (f *Film) DedupedGenreIDs() []int {
	seen := make(map[int]bool, len(f.Genres))
	ids := make([]int, 0, len(f.Genres))
	for _, g := range f.Genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		ids = append(ids, g.ID)
	}
	return ids
}

// ValidateFilm checks field constraints and returns the aggregated violations,
// or nil when the film is well formed.
func ValidateFilm(f *Film) error {
	ve := &ValidationError{}

	if strings.TrimSpace(f.Name) == "" {
		ve.add("name", "must not be blank")
	}

	if utf8.RuneCountInString(f.Description) > maxDescriptionLength {
		ve.add("description", "must be at most 200 characters")
	}

	if f.ReleaseDate.IsZero() {
		ve.add("releaseDate", "must be provided")
	} else if !f.ReleaseDate.After(earliestReleaseDate) {
		ve.add("releaseDate", "must be after 1895-12-27")
	}

	if f.Duration <= 0 {
		ve.add("duration", "must be a positive number of minutes")
	}

	return ve.orNil()
}
