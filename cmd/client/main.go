package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iudanet/sitekeeper/internal/client/api"
	"github.com/iudanet/sitekeeper/internal/client/auth"
	"github.com/iudanet/sitekeeper/internal/client/cli"
	"github.com/iudanet/sitekeeper/internal/client/iocli"
	"github.com/iudanet/sitekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/sitekeeper/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", defaultDBPath(), "Path to local database")
	logLevel := flag.String("log-level", "warn", "Log level (debug|info|warn|error)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()

	logger := newLogger(*logLevel)
	stdio := iocli.NewStdio()

	if len(args) == 0 {
		apiClient := api.NewClient(*serverURL)
		cli.New(stdio, apiClient, nil, nil, nil).PrintUsage()
		os.Exit(1)
	}

	// Контекст отменяется по Ctrl+C, важно для watch
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Локальное хранилище клиента
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage, logger)
	syncService := sync.NewService(apiClient, boltStorage, logger)

	app := cli.New(stdio, apiClient, authService, syncService, boltStorage)

	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultDBPath кладет базу клиента рядом с конфигами пользователя
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sitekeeper-client.db"
	}
	return filepath.Join(dir, "sitekeeper", "client.db")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("SiteKeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
