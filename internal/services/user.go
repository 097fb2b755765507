package services

import (
	"context"
	"errors"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// UserService orchestrates user CRUD and the friendship graph. Friendship
// operations validate that every referenced user exists before delegating.
type UserService struct {
	users storage.UserStorage
}

func NewUserService(users storage.UserStorage) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := models.ValidateUser(user); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := models.ValidateUser(user); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, user)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	return s.users.AddFriend(ctx, userID, friendID)
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	return s.users.RemoveFriend(ctx, userID, friendID)
}

func (s *UserService) ConfirmFriend(ctx context.Context, userID, friendID int) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	return s.users.ConfirmFriend(ctx, userID, friendID)
}

// Friends resolves the user's confirmed friend ids to full user records.
// Ids that no longer resolve (deleted concurrently) are dropped rather than
// failing the whole call.
func (s *UserService) Friends(ctx context.Context, userID int) ([]models.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.users.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

// CommonFriends returns the intersection of both users' confirmed friend
// sets, resolved to full user records and ordered by id. A user compared
// with themselves yields their whole friend set.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error) {
	if err := s.requireUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}

	userFriends, err := s.users.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.users.Friends(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int]bool, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = true
	}

	common := make([]int, 0)
	for _, id := range userFriends {
		if otherSet[id] {
			common = append(common, id)
		}
	}
	return s.resolveUsers(ctx, common)
}

func (s *UserService) requireUsers(ctx context.Context, ids ...int) error {
	for _, id := range ids {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) resolveUsers(ctx context.Context, ids []int) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if errors.Is(err, storage.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
