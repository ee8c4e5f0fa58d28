package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// bucketAuth хранит сессию (токены, соль) под одним ключом.
	bucketAuth = []byte("auth")
	// bucketSnapshot хранит сериализованную реплику целиком.
	bucketSnapshot = []byte("snapshot")
)

// Storage реализует storage.AuthStorage и storage.SnapshotStorage
// поверх одного bolt-файла. База локальная, один процесс-владелец.
type Storage struct {
	db *bbolt.DB
}

// New открывает (или создает) bolt-файл по dbPath и готовит buckets.
// Timeout защищает от зависания, если файл держит другой процесс.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAuth, bucketSnapshot} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database file. Повторный вызов безопасен.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
