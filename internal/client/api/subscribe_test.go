package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sitekeeper/internal/state"
	"github.com/iudanet/sitekeeper/pkg/api"
)

var testUpgrader = websocket.Upgrader{}

// TestClient_Subscribe проверяет получение уведомлений по websocket
func TestClient_Subscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync/ws", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		_ = conn.WriteJSON(api.SyncNotification{Clock: 3, UpdatedAt: 1700000000})
		_ = conn.WriteJSON(api.SyncNotification{Clock: 4, UpdatedAt: 1700000100})

		// Держим соединение, пока клиент не отключится
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewClient(server.URL)
	client.SetAccessToken("test-token")

	notifications, err := client.Subscribe(ctx)
	require.NoError(t, err)

	first := <-notifications
	assert.Equal(t, uint64(3), first.Clock)

	second := <-notifications
	assert.Equal(t, uint64(4), second.Clock)

	// Отмена контекста закрывает стрим
	cancel()
	select {
	case _, open := <-notifications:
		assert.False(t, open, "канал должен закрыться после отмены контекста")
	case <-time.After(2 * time.Second):
		t.Fatal("канал не закрылся после отмены контекста")
	}
}

// TestClient_Subscribe_Unauthorized проверяет отказ в handshake
func TestClient_Subscribe_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Subscribe(context.Background())

	require.Error(t, err)
	kind, ok := state.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, state.KindUnauthorized, kind)
}

// TestClient_Subscribe_ServerDown проверяет перевод сетевого сбоя
func TestClient_Subscribe_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Subscribe(context.Background())

	require.Error(t, err)
	kind, ok := state.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, state.KindNetwork, kind)
}
