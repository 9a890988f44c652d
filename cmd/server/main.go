package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/api"
	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/config"
	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/credentials"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Environment)

	ctx := context.Background()

	repo, closeRepo, err := cfg.BuildRepository(ctx)
	if err != nil {
		slog.Error("Failed to build repository", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	store, err := cfg.BuildBlobStore()
	if err != nil {
		slog.Error("Failed to build blob store", "error", err)
		os.Exit(1)
	}

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)

	svc, err := blogbliss.New(
		blogbliss.WithRepository(repo),
		blogbliss.WithBlobStore(store),
		blogbliss.WithPasswordHasher(credentials.NewBcryptHasher()),
		blogbliss.WithTokenIssuer(credentials.NewJWTIssuer(tokenAuth)),
	)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: routes(cfg, svc, tokenAuth),
	}

	go func() {
		slog.Info("BlogBliss server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"storage", cfg.StorageBackend)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func setupLogger(environment string) {
	if environment == "development" {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
}

func routes(cfg *config.ServerConfig, svc blogbliss.Service, tokenAuth *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/api/users", api.NewUsersHandler(svc, tokenAuth).Routes())
	r.Mount("/api/posts", api.NewPostsHandler(svc, tokenAuth).Routes())

	return r
}
