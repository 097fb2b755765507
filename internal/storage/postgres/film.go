package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// FilmStore is the pgx-backed implementation of storage.FilmStorage.
type FilmStore struct {
	db DB
}

func NewFilmStore(db DB) *FilmStore {
	return &FilmStore{db: db}
}

func (s *FilmStore) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("creating film: %w", err)
	}

	if err := insertFilmGenres(ctx, tx, id, film.DedupedGenreIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing film create: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *FilmStore) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE films
		 SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
		 WHERE id = $6`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID, film.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrFilmNotFound
	}

	// Genre associations are fully replaced, not merged. Delete-then-insert
	// runs inside the transaction so no reader observes a torn genre set.
	if _, err := tx.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("clearing film genres: %w", err)
	}
	if err := insertFilmGenres(ctx, tx, film.ID, film.DedupedGenreIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing film update: %w", err)
	}

	return s.GetByID(ctx, film.ID)
}

func (s *FilmStore) GetAll(ctx context.Context) ([]models.Film, error) {
	films, err := s.queryFilms(ctx,
		`SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		 FROM films f
		 JOIN mpa_ratings m ON f.mpa_id = m.id
		 ORDER BY f.id`,
	)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStore) GetByID(ctx context.Context, id int) (*models.Film, error) {
	films, err := s.queryFilms(ctx,
		`SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		 FROM films f
		 JOIN mpa_ratings m ON f.mpa_id = m.id
		 WHERE f.id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, storage.ErrFilmNotFound
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (s *FilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO likes (film_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (film_id, user_id) DO NOTHING`,
		filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("adding like: %w", err)
	}
	return nil
}

func (s *FilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM likes WHERE film_id = $1 AND user_id = $2`,
		filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing like: %w", err)
	}
	return nil
}

func (s *FilmStore) Popular(ctx context.Context, count int) ([]models.Film, error) {
	films, err := s.queryFilms(ctx,
		`SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		 FROM films f
		 JOIN mpa_ratings m ON f.mpa_id = m.id
		 LEFT JOIN likes l ON f.id = l.film_id
		 GROUP BY f.id, m.id, m.name
		 ORDER BY COUNT(DISTINCT l.user_id) DESC, f.id ASC
		 LIMIT $1`,
		count,
	)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (s *FilmStore) queryFilms(ctx context.Context, sql string, args ...any) ([]models.Film, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying films: %w", err)
	}
	defer rows.Close()

	films := []models.Film{}
	for rows.Next() {
		var (
			film        models.Film
			releaseDate time.Time
			mpa         models.MpaRating
		)
		if err := rows.Scan(&film.ID, &film.Name, &film.Description, &releaseDate, &film.Duration, &mpa.ID, &mpa.Name); err != nil {
			return nil, fmt.Errorf("scanning film: %w", err)
		}
		film.ReleaseDate = models.Date{Time: releaseDate}
		film.Mpa = &mpa
		film.Genres = []models.Genre{}
		film.Likes = []int{}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating films: %w", err)
	}
	return films, nil
}

// hydrate fills genre lists and like sets for the given films with one batch
// query per relation.
func (s *FilmStore) hydrate(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int]*models.Film, len(films))
	ids := make([]int, 0, len(films))
	for i := range films {
		byID[films[i].ID] = &films[i]
		ids = append(ids, films[i].ID)
	}

	rows, err := s.db.Query(ctx,
		`SELECT fg.film_id, g.id, g.name
		 FROM film_genres fg
		 JOIN genres g ON fg.genre_id = g.id
		 WHERE fg.film_id = ANY($1::int[])
		 ORDER BY fg.film_id, g.id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("querying film genres: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			filmID int
			genre  models.Genre
		)
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("scanning film genre: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Genres = append(film.Genres, genre)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating film genres: %w", err)
	}

	likeRows, err := s.db.Query(ctx,
		`SELECT film_id, user_id
		 FROM likes
		 WHERE film_id = ANY($1::int[])
		 ORDER BY film_id, user_id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("querying likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var filmID, userID int
		if err := likeRows.Scan(&filmID, &userID); err != nil {
			return fmt.Errorf("scanning like: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Likes = append(film.Likes, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("iterating likes: %w", err)
	}

	return nil
}

func insertFilmGenres(ctx context.Context, tx Tx, filmID int, genreIDs []int) error {
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`,
			filmID, genreID,
		); err != nil {
			return fmt.Errorf("inserting film genre: %w", err)
		}
	}
	return nil
}

// errNoRows reports whether err is the pgx no-rows sentinel.
func errNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
