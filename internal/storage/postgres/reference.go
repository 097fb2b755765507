package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// GenreStore reads the genre catalog. Catalog rows are seeded by migrations
// and never mutated through the application.
type GenreStore struct {
	db DBConn
}

func NewGenreStore(db DBConn) *GenreStore {
	return &GenreStore{db: db}
}

func (s *GenreStore) GetAll(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying genres: %w", err)
	}
	defer rows.Close()

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating genres: %w", err)
	}
	return genres, nil
}

func (s *GenreStore) GetByID(ctx context.Context, id int) (*models.Genre, error) {
	var g models.Genre
	err := s.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if errNoRows(err) {
		return nil, storage.ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting genre by id: %w", err)
	}
	return &g, nil
}

// MpaStore reads the MPA rating catalog.
type MpaStore struct {
	db DBConn
}

func NewMpaStore(db DBConn) *MpaStore {
	return &MpaStore{db: db}
}

func (s *MpaStore) GetAll(ctx context.Context) ([]models.MpaRating, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.MpaRating{}
	for rows.Next() {
		var m models.MpaRating
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scanning mpa rating: %w", err)
		}
		ratings = append(ratings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *MpaStore) GetByID(ctx context.Context, id int) (*models.MpaRating, error) {
	var m models.MpaRating
	err := s.db.QueryRow(ctx, `SELECT id, name FROM mpa_ratings WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if errNoRows(err) {
		return nil, storage.ErrMpaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting mpa rating by id: %w", err)
	}
	return &m, nil
}
