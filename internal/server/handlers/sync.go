package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/sitekeeper/internal/server/storage"
	"github.com/iudanet/sitekeeper/internal/state"
	"github.com/iudanet/sitekeeper/pkg/api"
)

// Notifier рассылает уведомления об изменении authority snapshot
// всем подписанным клиентам учетной записи
type Notifier interface {
	Notify(accountID string, n api.SyncNotification)
}

// SyncHandler обслуживает pull и push полного snapshot
type SyncHandler struct {
	logger    *slog.Logger
	snapshots storage.SnapshotStorage
	notifier  Notifier
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, snapshots storage.SnapshotStorage, notifier Notifier) *SyncHandler {
	return &SyncHandler{
		logger:    logger,
		snapshots: snapshots,
		notifier:  notifier,
	}
}

// HandleSync обрабатывает GET и POST запросы для синхронизации
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// account_id установлен AuthMiddleware
	accountID, ok := GetAccountID(ctx)
	if !ok {
		h.logger.Error("account ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handlePull(w, r, accountID)
	case http.MethodPost:
		h.handlePush(w, r, accountID)
	default:
		h.sendError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePull обрабатывает GET /api/v1/sync
// Возвращает полный authority snapshot учетной записи.
// Учетная запись без snapshot получает пустой snapshot с нулевыми часами.
func (h *SyncHandler) handlePull(w http.ResponseWriter, r *http.Request, accountID string) {
	ctx := r.Context()

	record, err := h.snapshots.GetSnapshot(ctx, accountID)
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			empty, err := state.Encode(state.NewSnapshot())
			if err != nil {
				h.logger.ErrorContext(ctx, "failed to encode empty snapshot", slog.Any("error", err))
				h.sendError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			h.sendJSON(w, api.PullResponse{Snapshot: empty, Clock: 0}, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get snapshot", slog.Any("error", err), slog.String("account_id", accountID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "pull request served",
		slog.String("account_id", accountID),
		slog.Uint64("clock", record.Clock))

	h.sendJSON(w, api.PullResponse{Snapshot: record.Data, Clock: record.Clock}, http.StatusOK)
}

// handlePush обрабатывает POST /api/v1/sync
// Сливает snapshot клиента в authority snapshot и возвращает результат.
// Внутренне противоречивый snapshot клиента отклоняется с 409,
// authority остается нетронутым.
func (h *SyncHandler) handlePush(w http.ResponseWriter, r *http.Request, accountID string) {
	ctx := r.Context()

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode push request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	clientSnap, err := state.Decode(req.Snapshot)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to decode client snapshot", slog.Any("error", err))
		h.sendError(w, "malformed snapshot", http.StatusBadRequest)
		return
	}

	// Восстанавливаем authority реплику
	authority := state.New()
	record, err := h.snapshots.GetSnapshot(ctx, accountID)
	switch {
	case err == nil:
		stored, err := state.Decode(record.Data)
		if err != nil {
			h.logger.ErrorContext(ctx, "stored snapshot is corrupt", slog.Any("error", err), slog.String("account_id", accountID))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		authority, err = state.FromSnapshot(stored)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to restore authority replica", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
	case errors.Is(err, storage.ErrSnapshotNotFound):
		// Первый push учетной записи
	default:
		h.logger.ErrorContext(ctx, "failed to get snapshot", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := authority.Merge(clientSnap); err != nil {
		if kind, ok := state.KindOf(err); ok && kind == state.KindMergeConflict {
			h.logger.WarnContext(ctx, "push rejected: merge conflict",
				slog.String("account_id", accountID),
				slog.Any("error", err))
			h.sendError(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "merge failed", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	merged, err := state.Encode(authority.Snapshot())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode merged snapshot", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now().Unix()
	newRecord := &storage.SnapshotRecord{
		AccountID: accountID,
		Data:      merged,
		Clock:     authority.Clock(),
		UpdatedAt: now,
	}

	if err := h.snapshots.SaveSnapshot(ctx, newRecord); err != nil {
		h.logger.ErrorContext(ctx, "failed to save snapshot", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "push merged",
		slog.String("account_id", accountID),
		slog.Uint64("clock", newRecord.Clock))

	// Будим остальные реплики учетной записи
	if h.notifier != nil {
		h.notifier.Notify(accountID, api.SyncNotification{
			Clock:     newRecord.Clock,
			UpdatedAt: now,
		})
	}

	h.sendJSON(w, api.PushResponse{Snapshot: merged, Clock: newRecord.Clock}, http.StatusOK)
}

func (h *SyncHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *SyncHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
