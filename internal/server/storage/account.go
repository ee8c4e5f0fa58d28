package storage

import (
	"context"
	"time"

	"github.com/iudanet/sitekeeper/internal/models"
)

// AccountStorage defines interface for account persistence
type AccountStorage interface {
	// CreateAccount creates a new account in the storage
	// Returns ErrAccountAlreadyExists if username is taken
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByUsername retrieves account by username
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetAccountByID retrieves account by ID
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByID(ctx context.Context, accountID string) (*models.Account, error)

	// TouchAccount updates the account's updated_at timestamp
	TouchAccount(ctx context.Context, accountID string, at time.Time) error
}
