package api

import "encoding/json"

// Snapshot ходит по проводу непрозрачными байтами кодека ядра
// (internal/state): сервер и клиент декодируют его сами.

// PullResponse представляет ответ на GET /api/v1/sync:
// полный authority snapshot учетной записи.
type PullResponse struct {
	Snapshot json.RawMessage `json:"snapshot"` // закодированный snapshot authority
	Clock    uint64          `json:"clock"`    // логические часы authority
}

// PushRequest представляет запрос POST /api/v1/sync:
// клиент отправляет свой полный snapshot на слияние.
type PushRequest struct {
	Snapshot json.RawMessage `json:"snapshot"` // закодированный snapshot клиента
}

// PushResponse представляет ответ на push: authority snapshot
// после слияния клиентских изменений.
type PushResponse struct {
	Snapshot json.RawMessage `json:"snapshot"` // закодированный snapshot после merge
	Clock    uint64          `json:"clock"`    // логические часы authority после merge
}

// SyncNotification представляет push-уведомление по websocket:
// authority snapshot изменился, клиентам пора делать pull.
type SyncNotification struct {
	Clock     uint64 `json:"clock"`      // логические часы authority после изменения
	UpdatedAt int64  `json:"updated_at"` // unix-время изменения
}
