package storage

import (
	"context"

	"github.com/iudanet/sitekeeper/internal/models"
)

// TokenStorage defines interface for refresh token persistence.
// Токены хранятся только в виде SHA256 хеша.
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves refresh token by token hash
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// DeleteRefreshToken deletes refresh token by token hash
	// Returns ErrTokenNotFound if token doesn't exist
	DeleteRefreshToken(ctx context.Context, tokenHash string) error

	// DeleteAccountTokens deletes all refresh tokens for an account
	// Returns number of deleted tokens
	DeleteAccountTokens(ctx context.Context, accountID string) (int, error)

	// DeleteExpiredTokens removes all expired tokens
	// Returns number of deleted tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
