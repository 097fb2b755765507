// Package storage defines the persistence contracts shared by the Postgres
// and in-memory backends. The backend is chosen once at startup.
package storage

import (
	"context"
	"errors"

	"github.com/filmorate/filmorate/internal/models"
)

var (
	ErrFilmNotFound       = errors.New("film not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrMpaNotFound        = errors.New("mpa rating not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrSelfFriendship     = errors.New("cannot add yourself as a friend")
)

// FilmStorage persists films, their genre associations and their like sets.
type FilmStorage interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	GetAll(ctx context.Context) ([]models.Film, error)
	GetByID(ctx context.Context, id int) (*models.Film, error)

	// AddLike and RemoveLike are idempotent set operations on the like
	// relation. Existence of the film and user is validated upstream.
	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error

	// Popular returns up to count films ordered by distinct-like count
	// descending, ties broken by film id ascending.
	Popular(ctx context.Context, count int) ([]models.Film, error)
}

// UserStorage persists users and the directed friendship graph.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)

	// AddFriend inserts an unconfirmed edge userID->friendID. Re-adding an
	// existing edge is a no-op; self-friending fails with ErrSelfFriendship.
	AddFriend(ctx context.Context, userID, friendID int) error
	// RemoveFriend deletes the edge userID->friendID; no-op when absent.
	RemoveFriend(ctx context.Context, userID, friendID int) error
	// ConfirmFriend flips the confirmed flag on the existing edge and fails
	// with ErrFriendshipNotFound when no such edge exists.
	ConfirmFriend(ctx context.Context, userID, friendID int) error
	// Friends returns the ids of confirmed outgoing edges, ordered ascending.
	Friends(ctx context.Context, userID int) ([]int, error)
}

// GenreStorage is the read-only genre catalog.
type GenreStorage interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id int) (*models.Genre, error)
}

// MpaStorage is the read-only MPA rating catalog.
type MpaStorage interface {
	GetAll(ctx context.Context) ([]models.MpaRating, error)
	GetByID(ctx context.Context, id int) (*models.MpaRating, error)
}
