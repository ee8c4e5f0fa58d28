package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Pragmas применяются при открытии каждой БД. WAL позволяет читателям
// не блокировать писателя; busy_timeout сглаживает конкуренцию за lock
// между sync-запросами разных аккаунтов.
var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

// Storage хранит аккаунты, refresh-токены и authority snapshots в SQLite.
// Реализует storage.AccountStorage, storage.TokenStorage и
// storage.SnapshotStorage.
type Storage struct {
	db *sql.DB
}

// New открывает (или создает) базу по dbPath и применяет миграции.
// Для тестов используйте ":memory:".
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Писатель в SQLite один; merge на push должен видеть свой же
	// snapshot, поэтому держим единственное соединение.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Storage{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) init(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return s.runMigrations()
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations накатывает embedded goose-миграции до последней версии.
func (s *Storage) runMigrations() error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// DB отдает нижележащее соединение (health check пингует его напрямую).
func (s *Storage) DB() *sql.DB {
	return s.db
}
