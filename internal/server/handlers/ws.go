package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/sitekeeper/pkg/api"
)

const (
	// writeWait время на запись одного сообщения в соединение
	writeWait = 10 * time.Second
	// pingPeriod интервал ping для поддержания соединения
	pingPeriod = 30 * time.Second
	// sendBuffer размер буфера уведомлений на соединение
	sendBuffer = 8
)

// wsClient — одно websocket соединение подписчика
type wsClient struct {
	conn *websocket.Conn
	send chan api.SyncNotification
}

// Hub отслеживает websocket подписки по учетным записям и рассылает
// уведомления об изменении authority snapshot. Реализует Notifier.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	clients  map[string]map[*wsClient]struct{}
	mu       sync.RWMutex
}

// NewHub creates a new websocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]map[*wsClient]struct{}),
	}
}

// Notify отправляет уведомление всем подписчикам учетной записи.
// Медленный подписчик с переполненным буфером уведомление теряет:
// следующее уведомление все равно приведет его к pull.
func (h *Hub) Notify(accountID string, n api.SyncNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[accountID] {
		select {
		case client.send <- n:
		default:
			h.logger.Warn("subscriber buffer full, dropping notification",
				slog.String("account_id", accountID))
		}
	}
}

// HandleWS обрабатывает GET /api/v1/sync/ws
// Апгрейдит соединение и держит подписку до разрыва.
// Маршрут закрыт AuthMiddleware.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := GetAccountID(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет ответ при ошибке handshake
		h.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan api.SyncNotification, sendBuffer),
	}

	h.register(accountID, client)
	h.logger.InfoContext(ctx, "subscriber connected", slog.String("account_id", accountID))

	go h.writePump(accountID, client)
	h.readPump(accountID, client)
}

// register добавляет соединение в список подписчиков
func (h *Hub) register(accountID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[accountID] == nil {
		h.clients[accountID] = make(map[*wsClient]struct{})
	}
	h.clients[accountID][client] = struct{}{}
}

// unregister убирает соединение и закрывает его
func (h *Hub) unregister(accountID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.clients[accountID]; ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			close(client.send)
			if len(set) == 0 {
				delete(h.clients, accountID)
			}
		}
	}
	_ = client.conn.Close()
}

// readPump читает входящие сообщения до разрыва соединения.
// Клиенты ничего не шлют, read loop нужен для обработки close frame.
func (h *Hub) readPump(accountID string, client *wsClient) {
	defer h.unregister(accountID, client)

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("subscriber read error", slog.Any("error", err))
			}
			return
		}
	}
}

// writePump пишет уведомления и ping в соединение
func (h *Hub) writePump(accountID string, client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(accountID, client)
	}()

	for {
		select {
		case n, ok := <-client.send:
			if !ok {
				// unregister закрыл канал
				_ = client.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteJSON(n); err != nil {
				h.logger.Warn("failed to write notification", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
