package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sitekeeper/internal/client/storage"
)

func TestStorage_SaveLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// До сохранения — ErrSnapshotNotFound
	_, err := store.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	data := []byte(`{"events":{},"clock":7}`)
	require.NoError(t, store.SaveSnapshot(ctx, data))

	got, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Повторное сохранение заменяет снапшот целиком
	updated := []byte(`{"events":{},"clock":9}`)
	require.NoError(t, store.SaveSnapshot(ctx, updated))

	got, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStorage_ClearSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveSnapshot(ctx, []byte("data")))
	require.NoError(t, store.ClearSnapshot(ctx))

	_, err := store.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	// Очистка пустого хранилища — no-op
	require.NoError(t, store.ClearSnapshot(ctx))
}

func TestStorage_Snapshot_Closed(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	require.NoError(t, store.Close())

	err := store.SaveSnapshot(ctx, []byte("data"))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.ClearSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
