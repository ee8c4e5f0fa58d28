package handlers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/iudanet/sitekeeper/internal/models"
	"github.com/iudanet/sitekeeper/internal/server/storage"
	"github.com/iudanet/sitekeeper/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockAccountStorage is an in-memory AccountStorage for testing
type mockAccountStorage struct {
	accounts    map[string]*models.Account // username -> Account
	createError error
	getError    error
}

func newMockAccountStorage() *mockAccountStorage {
	return &mockAccountStorage{accounts: make(map[string]*models.Account)}
}

func (m *mockAccountStorage) CreateAccount(ctx context.Context, account *models.Account) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.accounts[account.Username]; exists {
		return storage.ErrAccountAlreadyExists
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountStorage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	account, ok := m.accounts[username]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	return account, nil
}

func (m *mockAccountStorage) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, account := range m.accounts {
		if account.ID == accountID {
			return account, nil
		}
	}
	return nil, storage.ErrAccountNotFound
}

func (m *mockAccountStorage) TouchAccount(ctx context.Context, accountID string, at time.Time) error {
	for _, account := range m.accounts {
		if account.ID == accountID {
			account.UpdatedAt = at
			return nil
		}
	}
	return storage.ErrAccountNotFound
}

// mockTokenStorage is an in-memory TokenStorage for testing
type mockTokenStorage struct {
	tokens    map[string]*models.RefreshToken // token_hash -> RefreshToken
	saveError error
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return token, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	if _, ok := m.tokens[tokenHash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenHash)
	return nil
}

func (m *mockTokenStorage) DeleteAccountTokens(ctx context.Context, accountID string) (int, error) {
	deleted := 0
	for hash, token := range m.tokens {
		if token.AccountID == accountID {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	deleted := 0
	now := time.Now()
	for hash, token := range m.tokens {
		if token.ExpiresAt.Before(now) {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

// mockSnapshotStorage is an in-memory server SnapshotStorage for testing
type mockSnapshotStorage struct {
	records   map[string]*storage.SnapshotRecord // account_id -> record
	saveError error
	getError  error
}

func newMockSnapshotStorage() *mockSnapshotStorage {
	return &mockSnapshotStorage{records: make(map[string]*storage.SnapshotRecord)}
}

func (m *mockSnapshotStorage) SaveSnapshot(ctx context.Context, record *storage.SnapshotRecord) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.records[record.AccountID] = record
	return nil
}

func (m *mockSnapshotStorage) GetSnapshot(ctx context.Context, accountID string) (*storage.SnapshotRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	record, ok := m.records[accountID]
	if !ok {
		return nil, storage.ErrSnapshotNotFound
	}
	return record, nil
}

// mockNotifier records notifications for assertions
type mockNotifier struct {
	notifications []api.SyncNotification
	accountIDs    []string
	mu            sync.Mutex
}

func (m *mockNotifier) Notify(accountID string, n api.SyncNotification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountIDs = append(m.accountIDs, accountID)
	m.notifications = append(m.notifications, n)
}
