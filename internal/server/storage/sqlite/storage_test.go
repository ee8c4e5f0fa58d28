package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sitekeeper/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

// createTestAccount вставляет учетную запись и возвращает её
func createTestAccount(t *testing.T, s *Storage, username string) *models.Account {
	t.Helper()

	now := time.Now()
	account := &models.Account{
		ID:          uuid.New().String(),
		Username:    username,
		AuthKeyHash: "hash-" + username,
		PublicSalt:  "salt-" + username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	require.NoError(t, s.CreateAccount(context.Background(), account))
	return account
}

func TestStorage_New(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NotNil(t, s.DB())
	require.NoError(t, s.DB().Ping())
}
