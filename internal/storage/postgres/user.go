package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// UserStore is the pgx-backed implementation of storage.UserStorage.
type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.NormalizeName()

	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, login, name, birthday)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		stored.Email, stored.Login, stored.Name, birthdayArg(stored.Birthday),
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &stored, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.NormalizeName()

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`,
		stored.Email, stored.Login, stored.Name, birthdayArg(stored.Birthday), stored.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrUserNotFound
	}

	return &stored, nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, email, login, name, birthday FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, email, login, name, birthday FROM users WHERE id = $1`,
		id,
	)
	user, err := scanUser(row)
	if err != nil {
		if errNoRows(err) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return storage.ErrSelfFriendship
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO friendships (user_id, friend_id, confirmed)
		 VALUES ($1, $2, false)
		 ON CONFLICT (user_id, friend_id) DO NOTHING`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("adding friend: %w", err)
	}
	return nil
}

func (s *UserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("removing friend: %w", err)
	}
	return nil
}

func (s *UserStore) ConfirmFriend(ctx context.Context, userID, friendID int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE friendships SET confirmed = true WHERE user_id = $1 AND friend_id = $2`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("confirming friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrFriendshipNotFound
	}
	return nil
}

func (s *UserStore) Friends(ctx context.Context, userID int) ([]int, error) {
	rows, err := s.db.Query(ctx,
		`SELECT friend_id FROM friendships
		 WHERE user_id = $1 AND confirmed = true
		 ORDER BY friend_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying friends: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}
	return ids, nil
}

func scanUser(row Row) (*models.User, error) {
	var (
		user     models.User
		birthday *time.Time
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &birthday); err != nil {
		if errNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if birthday != nil {
		user.Birthday = models.Date{Time: *birthday}
	}
	return &user, nil
}

// birthdayArg maps a zero Date to NULL so optional birthdays round-trip.
func birthdayArg(d models.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}
