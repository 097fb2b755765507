package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

type friendshipKey struct {
	userID   int
	friendID int
}

// UserStore keeps users and the directed friendship graph in memory behind a
// single mutex.
type UserStore struct {
	mu          sync.Mutex
	users       map[int]models.User
	friendships map[friendshipKey]bool // value is the confirmed flag
	nextID      int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:       make(map[int]models.User),
		friendships: make(map[friendshipKey]bool),
		nextID:      1,
	}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *user
	stored.NormalizeName()
	stored.ID = s.nextID
	s.nextID++

	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, storage.ErrUserNotFound
	}

	stored := *user
	stored.NormalizeName()
	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return storage.ErrSelfFriendship
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := friendshipKey{userID: userID, friendID: friendID}
	if _, exists := s.friendships[key]; exists {
		return nil
	}
	s.friendships[key] = false
	return nil
}

func (s *UserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.friendships, friendshipKey{userID: userID, friendID: friendID})
	return nil
}

func (s *UserStore) ConfirmFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := friendshipKey{userID: userID, friendID: friendID}
	if _, exists := s.friendships[key]; !exists {
		return storage.ErrFriendshipNotFound
	}
	s.friendships[key] = true
	return nil
}

func (s *UserStore) Friends(ctx context.Context, userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0)
	for key, confirmed := range s.friendships {
		if key.userID == userID && confirmed {
			ids = append(ids, key.friendID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
