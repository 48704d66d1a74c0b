// Package main wires the trip planner API together and runs the HTTP
// server. All behavior lives in internal/; this file only assembles it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsandin/tripplanner/backend/internal/auth"
	"github.com/jsandin/tripplanner/backend/internal/config"
	"github.com/jsandin/tripplanner/backend/internal/handler"
	"github.com/jsandin/tripplanner/backend/internal/middleware"
	"github.com/jsandin/tripplanner/backend/internal/repo"
	"github.com/jsandin/tripplanner/backend/internal/service"
	"github.com/jsandin/tripplanner/backend/internal/weather"
)

const (
	// maxBodyBytes caps request bodies well above any legitimate payload.
	maxBodyBytes = 1 << 20 // 1 MiB

	// shutdownGrace is how long in-flight requests get to finish after
	// SIGINT/SIGTERM before the listener is torn down.
	shutdownGrace = 15 * time.Second

	jwtIssuer = "tripplanner-api"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	// Fail at boot rather than on the first request if the DB is down.
	if err := pool.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	slog.Info("database connection established")

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      buildRouter(cfg, logger, pool),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-stop:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// buildRouter assembles the repo, service, and handler layers and hangs the
// route tree behind the shared middleware chain.
func buildRouter(cfg config.Config, logger *slog.Logger, pool *pgxpool.Pool) chi.Router {
	userRepo := repo.NewUserRepo(pool)
	tripRepo := repo.NewTripRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)

	weatherClient := weather.NewClient(weather.Config{APIKey: cfg.OpenWeatherAPIKey})
	weatherBudget := weather.NewBudget()
	jwts := auth.NewJWTService(cfg.JWTSecret, jwtIssuer)

	users := service.NewUserService(userRepo)
	trips := service.NewTripService(tripRepo, activityRepo)
	activities := service.NewActivityService(tripRepo, activityRepo)
	itineraries := service.NewItineraryService(tripRepo, activityRepo, weatherClient, weatherBudget)
	weatherSvc := service.NewWeatherService(weatherClient, weatherBudget)

	api := handler.NewServer(users, trips, activities, itineraries, weatherSvc, jwts)

	// RequestID and RealIP must run before the logger so every log line
	// carries a trace ID and the caller's real address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", api.Router())
	return r
}

// newLogger builds the JSON slog logger at the configured level, falling
// back to info when the level string does not parse.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
