package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

type filmRecord struct {
	film  models.Film
	likes map[int]bool
}

// FilmStore keeps films and their like sets in memory. A single mutex guards
// the id counter and both maps so concurrent handlers never race.
type FilmStore struct {
	mu     sync.Mutex
	films  map[int]*filmRecord
	nextID int
}

func NewFilmStore() *FilmStore {
	return &FilmStore{
		films:  make(map[int]*filmRecord),
		nextID: 1,
	}
}

func (s *FilmStore) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneFilm(film)
	stored.ID = s.nextID
	s.nextID++

	s.films[stored.ID] = &filmRecord{film: *stored, likes: make(map[int]bool)}
	stored.Likes = []int{}
	return stored, nil
}

func (s *FilmStore) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.films[film.ID]
	if !ok {
		return nil, storage.ErrFilmNotFound
	}

	// Full replace of mutable fields including the genre set; the like set
	// is owned by the store and survives updates.
	stored := cloneFilm(film)
	rec.film = *stored
	return s.hydrateLocked(rec), nil
}

func (s *FilmStore) GetAll(ctx context.Context) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	films := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, *s.hydrateLocked(s.films[id]))
	}
	return films, nil
}

func (s *FilmStore) GetByID(ctx context.Context, id int) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.films[id]
	if !ok {
		return nil, storage.ErrFilmNotFound
	}
	return s.hydrateLocked(rec), nil
}

func (s *FilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.films[filmID]
	if !ok {
		return storage.ErrFilmNotFound
	}
	rec.likes[userID] = true
	return nil
}

func (s *FilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.films[filmID]
	if !ok {
		return storage.ErrFilmNotFound
	}
	delete(rec.likes, userID)
	return nil
}

func (s *FilmStore) Popular(ctx context.Context, count int) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]*filmRecord, 0, len(s.films))
	for _, rec := range s.films {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if len(recs[i].likes) != len(recs[j].likes) {
			return len(recs[i].likes) > len(recs[j].likes)
		}
		return recs[i].film.ID < recs[j].film.ID
	})

	if count > len(recs) {
		count = len(recs)
	}
	films := make([]models.Film, 0, count)
	for _, rec := range recs[:count] {
		films = append(films, *s.hydrateLocked(rec))
	}
	return films, nil
}

func (s *FilmStore) hydrateLocked(rec *filmRecord) *models.Film {
	film := cloneFilm(&rec.film)
	likes := make([]int, 0, len(rec.likes))
	for userID := range rec.likes {
		likes = append(likes, userID)
	}
	sort.Ints(likes)
	film.Likes = likes
	return film
}

func cloneFilm(film *models.Film) *models.Film {
	out := *film
	if film.Mpa != nil {
		mpa := *film.Mpa
		out.Mpa = &mpa
	}
	out.Genres = make([]models.Genre, len(film.Genres))
	copy(out.Genres, film.Genres)
	out.Likes = nil
	return &out
}
