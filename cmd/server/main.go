package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/sitekeeper/internal/server/handlers"
	"github.com/iudanet/sitekeeper/internal/server/jwt"
	"github.com/iudanet/sitekeeper/internal/server/middleware"
	"github.com/iudanet/sitekeeper/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	// период удаления просроченных refresh tokens
	tokenCleanupPeriod = time.Hour

	shutdownTimeout = 10 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "sitekeeper.db", "Path to SQLite database")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*logLevel)

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	jwtSecret, err := loadJWTSecret(logger)
	if err != nil {
		return err
	}

	jwtSvc := jwt.NewService(jwtSecret, accessTokenTTL, refreshTokenTTL)

	// Handlers
	hub := handlers.NewHub(logger)
	authHandler := handlers.NewAuthHandler(logger, store, store, jwtSvc)
	syncHandler := handlers.NewSyncHandler(logger, store, hub)
	healthHandler := handlers.NewHealthHandler(logger, store.DB(), Version)

	// Middleware
	requireAuth := middleware.AuthMiddleware(logger, jwtSvc)
	loginLimiter := middleware.NewRateLimiter(10, time.Minute, logger)
	defer loginLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/auth/register", loginLimiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /api/v1/auth/salt/{username}", authHandler.GetSalt)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /api/v1/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("/api/v1/sync", requireAuth(http.HandlerFunc(syncHandler.HandleSync)))
	mux.Handle("GET /api/v1/sync/ws", requireAuth(http.HandlerFunc(hub.HandleWS)))
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingMiddleware(logger, "/api/v1/health")(mux),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Фоновая чистка просроченных refresh tokens
	go cleanupExpiredTokens(ctx, logger, store)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// loadJWTSecret берет секрет из окружения. Без секрета генерируем
// случайный: сервер работает, но access tokens не переживут рестарт.
func loadJWTSecret(logger *slog.Logger) (string, error) {
	if secret := os.Getenv("SITEKEEPER_JWT_SECRET"); secret != "" {
		return secret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}

	logger.Warn("SITEKEEPER_JWT_SECRET is not set, using ephemeral secret")
	return base64.StdEncoding.EncodeToString(buf), nil
}

// tokenCleaner нужен, чтобы не тянуть в main весь интерфейс хранилища
type tokenCleaner interface {
	DeleteExpiredTokens(ctx context.Context) (int, error)
}

func cleanupExpiredTokens(ctx context.Context, logger *slog.Logger, store tokenCleaner) {
	ticker := time.NewTicker(tokenCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := store.DeleteExpiredTokens(ctx)
			if err != nil {
				logger.Error("failed to delete expired tokens", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired refresh tokens deleted", "count", deleted)
			}
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("SiteKeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
