package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/sitekeeper/internal/server/storage"
)

// SaveSnapshot stores or replaces the account's authority snapshot
func (s *Storage) SaveSnapshot(ctx context.Context, record *storage.SnapshotRecord) error {
	query := `
		INSERT INTO snapshots (account_id, data, clock, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			data = excluded.data,
			clock = excluded.clock,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.AccountID,
		record.Data,
		record.Clock,
		record.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the account's authority snapshot
func (s *Storage) GetSnapshot(ctx context.Context, accountID string) (*storage.SnapshotRecord, error) {
	query := `
		SELECT account_id, data, clock, updated_at
		FROM snapshots
		WHERE account_id = ?
	`

	record := &storage.SnapshotRecord{}

	err := s.db.QueryRowContext(ctx, query, accountID).Scan(
		&record.AccountID,
		&record.Data,
		&record.Clock,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return record, nil
}
