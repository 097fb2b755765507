package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

const popularCacheKeyPrefix = "films:popular:"

// FilmService orchestrates film CRUD and likes. Reference ids are resolved
// against the catalogs before any write, and like operations verify that both
// the film and the user exist.
type FilmService struct {
	films  storage.FilmStorage
	users  storage.UserStorage
	genres storage.GenreStorage
	mpa    storage.MpaStorage

	// cache is optional; when nil every Popular call hits the store.
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewFilmService(films storage.FilmStorage, users storage.UserStorage, genres storage.GenreStorage, mpa storage.MpaStorage) *FilmService {
	return &FilmService{
		films:  films,
		users:  users,
		genres: genres,
		mpa:    mpa,
	}
}

// SetPopularCache enables cache-aside reads for Popular, invalidated on every
// film or like mutation.
func (s *FilmService) SetPopularCache(client *redis.Client, ttl time.Duration) {
	s.cache = client
	s.cacheTTL = ttl
}

func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := models.ValidateFilm(film); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	created, err := s.films.Create(ctx, film)
	if err != nil {
		return nil, err
	}
	s.invalidatePopular(ctx)
	return created, nil
}

func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := models.ValidateFilm(film); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	updated, err := s.films.Update(ctx, film)
	if err != nil {
		return nil, err
	}
	s.invalidatePopular(ctx)
	return updated, nil
}

func (s *FilmService) GetAll(ctx context.Context) ([]models.Film, error) {
	return s.films.GetAll(ctx)
}

func (s *FilmService) GetByID(ctx context.Context, id int) (*models.Film, error) {
	return s.films.GetByID(ctx, id)
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.invalidatePopular(ctx)
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.invalidatePopular(ctx)
	return nil
}

// Popular returns the top count films by distinct like count. Ranking is
// computed by the store; this layer only adds the cache.
func (s *FilmService) Popular(ctx context.Context, count int) ([]models.Film, error) {
	cacheKey := fmt.Sprintf("%s%d", popularCacheKeyPrefix, count)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var films []models.Film
			if json.Unmarshal([]byte(cached), &films) == nil {
				return films, nil
			}
		}
	}

	films, err := s.films.Popular(ctx, count)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(films); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				logging.Debug("popular cache set failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return films, nil
}

// resolveReferences validates the MPA and genre ids against the catalogs and
// replaces them with fully named reference rows. Any unresolvable id fails
// the whole operation before a write happens.
func (s *FilmService) resolveReferences(ctx context.Context, film *models.Film) error {
	if film.Mpa == nil {
		return &models.ValidationError{Errors: []models.FieldError{
			{Field: "mpa", Message: "must be provided"},
		}}
	}

	mpa, err := s.mpa.GetByID(ctx, film.Mpa.ID)
	if err != nil {
		return err
	}
	film.Mpa = mpa

	genreIDs := film.DedupedGenreIDs()
	resolved := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genre, err := s.genres.GetByID(ctx, id)
		if err != nil {
			return err
		}
		resolved = append(resolved, *genre)
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].ID < resolved[j].ID })
	film.Genres = resolved

	return nil
}

func (s *FilmService) invalidatePopular(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys, err := s.cache.Keys(ctx, popularCacheKeyPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logging.Debug("popular cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
