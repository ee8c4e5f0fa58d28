package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/iudanet/sitekeeper/internal/state"
	"github.com/iudanet/sitekeeper/pkg/api"
)

// Subscribe открывает websocket-стрим уведомлений об изменениях
// authority snapshot. Канал закрывается при обрыве соединения
// или отмене контекста; после уведомления клиенту следует делать pull.
func (c *Client) Subscribe(ctx context.Context) (<-chan api.SyncNotification, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	u = u.JoinPath("/api/v1/sync/ws")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	header := http.Header{}
	if c.accessToken != "" {
		header.Set("Authorization", "Bearer "+c.accessToken)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, state.UnauthorizedError("websocket handshake rejected")
		}
		return nil, state.NetworkError(fmt.Sprintf("failed to dial websocket: %v", err))
	}

	notifications := make(chan api.SyncNotification)

	// Закрываем соединение при отмене контекста,
	// это разблокирует ReadJSON в reader-горутине
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		defer close(notifications)
		defer conn.Close()

		for {
			var n api.SyncNotification
			if err := conn.ReadJSON(&n); err != nil {
				return
			}
			select {
			case notifications <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notifications, nil
}

