package storage

import (
	"context"
)

// SnapshotRecord хранит authority snapshot учетной записи
type SnapshotRecord struct {
	AccountID string // ID учетной записи-владельца
	Data      []byte // закодированный snapshot (кодек ядра)
	Clock     uint64 // логические часы authority
	UpdatedAt int64  // unix-время последнего изменения
}

// SnapshotStorage defines interface for authority snapshot persistence.
// У каждой учетной записи ровно один snapshot: сервер хранит
// результат последнего merge целиком.
type SnapshotStorage interface {
	// SaveSnapshot stores or replaces the account's snapshot
	SaveSnapshot(ctx context.Context, record *SnapshotRecord) error

	// GetSnapshot retrieves the account's snapshot
	// Returns ErrSnapshotNotFound if nothing has been stored yet
	GetSnapshot(ctx context.Context, accountID string) (*SnapshotRecord, error)
}
