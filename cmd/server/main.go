package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate/internal/config"
	"github.com/filmorate/filmorate/internal/database"
	"github.com/filmorate/filmorate/internal/handlers"
	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/middleware"
	"github.com/filmorate/filmorate/internal/services"
	"github.com/filmorate/filmorate/internal/storage"
	"github.com/filmorate/filmorate/internal/storage/memory"
	"github.com/filmorate/filmorate/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting filmorate server", map[string]interface{}{
		"backend": cfg.Storage.Backend,
		"env":     cfg.Server.Environment,
	})

	var (
		filmStore  storage.FilmStorage
		userStore  storage.UserStorage
		genreStore storage.GenreStorage
		mpaStore   storage.MpaStorage
		dbHealth   handlers.HealthChecker
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		logger.Info("Connecting to PostgreSQL", map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
		})
		db, err := database.NewPostgresDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer db.Close()

		logger.Info("Running database migrations")
		migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
		if err != nil {
			return fmt.Errorf("creating migrator: %w", err)
		}
		if err := migrator.Up(); err != nil {
			_ = migrator.Close()
			return fmt.Errorf("running migrations: %w", err)
		}
		_ = migrator.Close()

		adapter := postgres.NewPoolAdapter(db.Pool)
		filmStore = postgres.NewFilmStore(adapter)
		userStore = postgres.NewUserStore(adapter)
		genreStore = postgres.NewGenreStore(adapter)
		mpaStore = postgres.NewMpaStore(adapter)
		dbHealth = db

	case config.StorageBackendMemory:
		filmStore = memory.NewFilmStore()
		userStore = memory.NewUserStore()
		genreStore = memory.NewGenreStore()
		mpaStore = memory.NewMpaStore()
	}

	var (
		redisClient *redis.Client
		redisHealth handlers.HealthChecker
	)
	if cfg.Redis.Enabled {
		logger.Info("Connecting to Redis", map[string]interface{}{"addr": cfg.Redis.Addr()})
		redisDB, err := database.NewRedisDB(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()
		redisClient = redisDB.Client
		redisHealth = redisDB
	}

	filmService := services.NewFilmService(filmStore, userStore, genreStore, mpaStore)
	if redisClient != nil {
		filmService.SetPopularCache(redisClient, cfg.Storage.PopularCacheTTL)
	}
	userService := services.NewUserService(userStore)

	healthHandler := handlers.NewHealthHandler(dbHealth, redisHealth)
	filmHandler := handlers.NewFilmHandler(filmService)
	userHandler := handlers.NewUserHandler(userService)
	referenceHandler := handlers.NewReferenceHandler(genreStore, mpaStore)

	writeLimiter := middleware.NewRateLimiter(
		redisClient, cfg.Storage.RateLimit, cfg.Storage.RateLimitWindow,
		"ratelimit:write:", middleware.GetClientIP, true,
	)
	limited := func(h http.HandlerFunc) http.Handler {
		return writeLimiter.Middleware(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	mux.Handle("POST /films", limited(filmHandler.Create))
	mux.Handle("PUT /films", limited(filmHandler.Update))
	mux.HandleFunc("GET /films", filmHandler.List)
	mux.HandleFunc("GET /films/popular", filmHandler.Popular)
	mux.HandleFunc("GET /films/{id}", filmHandler.Get)
	mux.Handle("PUT /films/{id}/like/{userId}", limited(filmHandler.AddLike))
	mux.Handle("DELETE /films/{id}/like/{userId}", limited(filmHandler.RemoveLike))

	mux.Handle("POST /users", limited(userHandler.Create))
	mux.Handle("PUT /users", limited(userHandler.Update))
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("GET /users/{id}", userHandler.Get)
	mux.Handle("PUT /users/{id}/friends/{friendId}", limited(userHandler.AddFriend))
	mux.Handle("PUT /users/{id}/friends/{friendId}/confirm", limited(userHandler.ConfirmFriend))
	mux.Handle("DELETE /users/{id}/friends/{friendId}", limited(userHandler.RemoveFriend))
	mux.HandleFunc("GET /users/{id}/friends", userHandler.Friends)
	mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", userHandler.CommonFriends)

	mux.HandleFunc("GET /genres", referenceHandler.ListGenres)
	mux.HandleFunc("GET /genres/{id}", referenceHandler.GetGenre)
	mux.HandleFunc("GET /mpa", referenceHandler.ListMpaRatings)
	mux.HandleFunc("GET /mpa/{id}", referenceHandler.GetMpaRating)

	requestLogger := middleware.NewRequestLogger(logger)
	var handler http.Handler = mux
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{"addr": addr})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
