package storage

import (
	"context"
)

//go:generate moq -out snapshotstorage_mock.go . SnapshotStorage

// SnapshotStorage defines interface for persisting the replica snapshot on client.
// Снапшот хранится целиком одним блобом: реплика живет в памяти,
// на диск уходит только результат Encode.
type SnapshotStorage interface {
	// SaveSnapshot stores the encoded replica snapshot, replacing the previous one
	SaveSnapshot(ctx context.Context, data []byte) error

	// LoadSnapshot retrieves the last saved snapshot bytes
	// Returns ErrSnapshotNotFound if nothing has been saved yet
	LoadSnapshot(ctx context.Context) ([]byte, error)

	// ClearSnapshot removes the persisted snapshot (full re-sync / logout)
	ClearSnapshot(ctx context.Context) error
}
