// Package memory implements the storage contracts with mutex-guarded maps.
// It exists for local development and tests; no state survives a restart.
package memory

import (
	"context"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// Catalog contents mirror the seed rows in migrations/.
var (
	seedGenres = []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
	seedMpaRatings = []models.MpaRating{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

// GenreStore serves the static genre catalog. The catalog is immutable after
// construction, so reads need no locking.
type GenreStore struct {
	genres []models.Genre
}

func NewGenreStore() *GenreStore {
	return &GenreStore{genres: seedGenres}
}

func (s *GenreStore) GetAll(ctx context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, len(s.genres))
	copy(out, s.genres)
	return out, nil
}

func (s *GenreStore) GetByID(ctx context.Context, id int) (*models.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			genre := g
			return &genre, nil
		}
	}
	return nil, storage.ErrGenreNotFound
}

// MpaStore serves the static MPA rating catalog.
type MpaStore struct {
	ratings []models.MpaRating
}

func NewMpaStore() *MpaStore {
	return &MpaStore{ratings: seedMpaRatings}
}

func (s *MpaStore) GetAll(ctx context.Context) ([]models.MpaRating, error) {
	out := make([]models.MpaRating, len(s.ratings))
	copy(out, s.ratings)
	return out, nil
}

func (s *MpaStore) GetByID(ctx context.Context, id int) (*models.MpaRating, error) {
	for _, m := range s.ratings {
		if m.ID == id {
			rating := m
			return &rating, nil
		}
	}
	return nil, storage.ErrMpaNotFound
}
