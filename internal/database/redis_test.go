package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate/internal/config"
)

func testRedisConfig() config.RedisConfig {
	return config.RedisConfig{
		Host:     "localhost",
		Port:     6379,
		Password: "secret",
		DB:       2,
	}
}

func stubRedisSeams(t *testing.T) {
	t.Helper()
	origNew := newRedisClient
	origPing := redisPing
	t.Cleanup(func() {
		newRedisClient = origNew
		redisPing = origPing
	})
}

func TestNewRedisDB_BuildsOptionsFromConfig(t *testing.T) {
	stubRedisSeams(t)

	var got redis.Options
	newRedisClient = func(opts *redis.Options) *redis.Client {
		got = *opts
		return &redis.Client{}
	}
	redisPing = func(ctx context.Context, client *redis.Client) error { return nil }

	db, err := NewRedisDB(testRedisConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Client == nil {
		t.Fatal("expected a client")
	}
	if got.Addr != "localhost:6379" {
		t.Fatalf("expected addr from config, got %q", got.Addr)
	}
	if got.Password != "secret" || got.DB != 2 {
		t.Fatalf("expected credentials from config, got %+v", got)
	}
	if got.DialTimeout != 5*time.Second || got.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected timeouts: %+v", got)
	}
	if got.PoolSize != 10 || got.MinIdleConns != 3 {
		t.Fatalf("unexpected pool sizing: %+v", got)
	}
}

func TestNewRedisDB_PingError(t *testing.T) {
	stubRedisSeams(t)

	newRedisClient = func(opts *redis.Options) *redis.Client {
		return &redis.Client{}
	}
	pingErr := errors.New("connection refused")
	redisPing = func(ctx context.Context, client *redis.Client) error { return pingErr }

	_, err := NewRedisDB(testRedisConfig())
	if !errors.Is(err, pingErr) {
		t.Fatalf("expected wrapped ping error, got %v", err)
	}
	if !strings.Contains(err.Error(), "pinging redis") {
		t.Fatalf("expected ping context in error, got %q", err.Error())
	}
}

func TestRedisDB_Health(t *testing.T) {
	stubRedisSeams(t)

	redisPing = func(ctx context.Context, client *redis.Client) error { return nil }
	db := &RedisDB{Client: &redis.Client{}}
	if err := db.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}

	healthErr := errors.New("loading dataset")
	redisPing = func(ctx context.Context, client *redis.Client) error { return healthErr }
	if err := db.Health(context.Background()); !errors.Is(err, healthErr) {
		t.Fatalf("expected health error, got %v", err)
	}
}

func TestRedisDB_CloseNilClient(t *testing.T) {
	db := &RedisDB{}
	if err := db.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
