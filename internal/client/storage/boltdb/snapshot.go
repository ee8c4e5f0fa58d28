package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/sitekeeper/internal/client/storage"
)

var snapshotKey = []byte("replica")

// SaveSnapshot stores the encoded replica snapshot, replacing the previous one
func (s *Storage) SaveSnapshot(ctx context.Context, data []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}

		if err := bucket.Put(snapshotKey, data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return nil
	})
}

// LoadSnapshot retrieves the last saved snapshot bytes
func (s *Storage) LoadSnapshot(ctx context.Context) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var snapshot []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return storage.ErrSnapshotNotFound
		}

		data := bucket.Get(snapshotKey)
		if data == nil {
			return storage.ErrSnapshotNotFound
		}

		// Копируем: данные bbolt валидны только внутри транзакции
		snapshot = make([]byte, len(data))
		copy(snapshot, data)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ClearSnapshot removes the persisted snapshot
func (s *Storage) ClearSnapshot(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return nil
		}

		if err := bucket.Delete(snapshotKey); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}

		return nil
	})
}
