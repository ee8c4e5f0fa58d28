package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/sitekeeper/internal/models"
	"github.com/iudanet/sitekeeper/internal/server/storage"
)

// CreateAccount creates a new account in the storage
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, auth_key_hash, public_salt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Username,
		account.AuthKeyHash,
		account.PublicSalt,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		// Проверяем на duplicate username
		if strings.Contains(err.Error(), "UNIQUE constraint failed: accounts.username") {
			return storage.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccountByUsername retrieves account by username
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, auth_key_hash, public_salt, created_at, updated_at
		FROM accounts
		WHERE username = ?
	`

	return s.scanAccount(s.db.QueryRowContext(ctx, query, username))
}

// GetAccountByID retrieves account by ID
func (s *Storage) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	query := `
		SELECT id, username, auth_key_hash, public_salt, created_at, updated_at
		FROM accounts
		WHERE id = ?
	`

	return s.scanAccount(s.db.QueryRowContext(ctx, query, accountID))
}

// TouchAccount updates the account's updated_at timestamp
func (s *Storage) TouchAccount(ctx context.Context, accountID string, at time.Time) error {
	query := `UPDATE accounts SET updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, at, accountID)
	if err != nil {
		return fmt.Errorf("failed to touch account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrAccountNotFound
	}

	return nil
}

func (s *Storage) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.AuthKeyHash,
		&account.PublicSalt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
