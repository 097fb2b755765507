package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

func TestUserStore_CreateReturnsAssignedID(t *testing.T) {
	var gotArgs []any
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotArgs = args
			return rowFromValues(42)
		},
	}
	store := NewUserStore(db)

	created, err := store.Create(context.Background(), &models.User{
		Email: "a@example.com",
		Login: "a",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("expected id 42, got %d", created.ID)
	}
	if created.Name != "a" {
		t.Fatalf("expected name defaulted to login, got %q", created.Name)
	}
	if len(gotArgs) != 4 {
		t.Fatalf("expected 4 insert args, got %d", len(gotArgs))
	}
	if gotArgs[3] != nil {
		t.Fatalf("expected NULL birthday for zero date, got %v", gotArgs[3])
	}
}

func TestUserStore_CreateSendsBirthdayWhenSet(t *testing.T) {
	var gotArgs []any
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotArgs = args
			return rowFromValues(1)
		},
	}
	store := NewUserStore(db)

	birthday := models.NewDate(1990, time.June, 1)
	if _, err := store.Create(context.Background(), &models.User{
		Email:    "a@example.com",
		Login:    "a",
		Birthday: birthday,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotArgs[3].(time.Time).Equal(birthday.Time) {
		t.Fatalf("expected birthday arg %v, got %v", birthday.Time, gotArgs[3])
	}
}

func TestUserStore_UpdateUnknownID(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return fakeCommandTag{rowsAffected: 0}, nil
		},
	}
	store := NewUserStore(db)

	_, err := store.Update(context.Background(), &models.User{ID: 9, Email: "a@b.c", Login: "a"})
	if !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_GetByIDNoRows(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	store := NewUserStore(db)

	_, err := store.GetByID(context.Background(), 5)
	if !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_GetByIDNullBirthday(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(5, "a@example.com", "a", "Alice", nil)
		},
	}
	store := NewUserStore(db)

	user, err := store.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.Birthday.IsZero() {
		t.Fatalf("expected zero birthday, got %v", user.Birthday)
	}
}

func TestUserStore_GetAll(t *testing.T) {
	bday := time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			return &fakeRows{rows: [][]any{
				{1, "a@example.com", "a", "Alice", &bday},
				{2, "b@example.com", "b", "Bob", nil},
			}}, nil
		},
	}
	store := NewUserStore(db)

	users, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if !users[0].Birthday.Equal(bday) {
		t.Fatalf("expected birthday %v, got %v", bday, users[0].Birthday)
	}
	if !users[1].Birthday.IsZero() {
		t.Fatalf("expected zero birthday for NULL column, got %v", users[1].Birthday)
	}
}

func TestUserStore_AddFriendSelfSkipsQuery(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			t.Fatal("exec must not run for a self-friendship")
			return nil, nil
		},
	}
	store := NewUserStore(db)

	if err := store.AddFriend(context.Background(), 3, 3); !errors.Is(err, storage.ErrSelfFriendship) {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}
}

func TestUserStore_ConfirmFriendUnknownEdge(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return fakeCommandTag{rowsAffected: 0}, nil
		},
	}
	store := NewUserStore(db)

	err := store.ConfirmFriend(context.Background(), 1, 2)
	if !errors.Is(err, storage.ErrFriendshipNotFound) {
		t.Fatalf("expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestUserStore_Friends(t *testing.T) {
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			return &fakeRows{rows: [][]any{{2}, {5}, {9}}}, nil
		},
	}
	store := NewUserStore(db)

	ids, err := store.Friends(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != 2 || ids[2] != 9 {
		t.Fatalf("unexpected friend ids: %v", ids)
	}
}
