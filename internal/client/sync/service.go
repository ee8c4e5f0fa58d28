package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/sitekeeper/internal/client/storage"
	"github.com/iudanet/sitekeeper/internal/state"
	"github.com/iudanet/sitekeeper/pkg/api"
)

//go:generate moq -out remoteapi_mock.go . RemoteAPI
//go:generate moq -out service_mock.go . Service

// RemoteAPI описывает используемую сервисом часть API клиента
type RemoteAPI interface {
	// Pull запрашивает полный authority snapshot
	Pull(ctx context.Context) (*api.PullResponse, error)

	// Push отправляет snapshot клиента на слияние
	Push(ctx context.Context, req api.PushRequest) (*api.PushResponse, error)

	// Subscribe открывает стрим уведомлений об изменениях authority
	Subscribe(ctx context.Context) (<-chan api.SyncNotification, error)
}

// Service определяет интерфейс сервиса синхронизации
type Service interface {
	// Sync выполняет полный цикл синхронизации реплики с сервером
	Sync(ctx context.Context, replica *state.Replica) (*Result, error)

	// Watch подписывается на уведомления и синхронизирует реплику
	// при каждом изменении authority. Блокируется до отмены контекста.
	Watch(ctx context.Context, replica *state.Replica) error
}

// Result contains sync operation results
type Result struct {
	Pulled bool   // получен ли authority snapshot
	Merged bool   // слиты ли foreign изменения в реплику
	Pushed bool   // отправлены ли локальные изменения
	Clock  uint64 // логические часы реплики после синхронизации
}

type service struct {
	apiClient RemoteAPI
	snapshots storage.SnapshotStorage
	logger    *slog.Logger
}

// NewService creates a new sync service
func NewService(apiClient RemoteAPI, snapshots storage.SnapshotStorage, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Sync performs full synchronization with server:
//  1. Pull authority snapshot
//  2. Merge it into the local replica
//  3. Push merged snapshot if local changes were pending
//  4. Persist the resulting snapshot
//
// Любой сбой переводит реплику в failed с причиной;
// истекший дедлайн контекста дает reason "timeout".
func (s *service) Sync(ctx context.Context, replica *state.Replica) (*Result, error) {
	s.logger.Info("Starting synchronization", "clock", replica.Clock())

	hadPending := replica.NeedsSync()
	replica.BeginSync()

	result := &Result{}

	// Pull: authority snapshot целиком
	pullResp, err := s.apiClient.Pull(ctx)
	if err != nil {
		return nil, s.fail(ctx, replica, fmt.Errorf("pull failed: %w", err))
	}
	result.Pulled = true

	foreign, err := state.Decode(pullResp.Snapshot)
	if err != nil {
		return nil, s.fail(ctx, replica, fmt.Errorf("failed to decode authority snapshot: %w", err))
	}

	if err := replica.Merge(foreign); err != nil {
		return nil, s.fail(ctx, replica, fmt.Errorf("merge failed: %w", err))
	}
	result.Merged = true

	s.logger.Info("Merged authority snapshot",
		"authority_clock", pullResp.Clock,
		"local_clock", replica.Clock())

	// Push: только если до синхронизации были локальные изменения
	if hadPending {
		if err := s.push(ctx, replica); err != nil {
			return nil, s.fail(ctx, replica, err)
		}
		result.Pushed = true
	}

	// Персистим итоговый snapshot
	data, err := state.Encode(replica.Snapshot())
	if err != nil {
		return nil, s.fail(ctx, replica, fmt.Errorf("failed to encode snapshot: %w", err))
	}
	if err := s.snapshots.SaveSnapshot(ctx, data); err != nil {
		// Синхронизация уже прошла, проблема только с локальным диском
		s.logger.Warn("Failed to persist snapshot", "error", err)
	}

	result.Clock = replica.Clock()

	s.logger.Info("Synchronization completed",
		"pulled", result.Pulled,
		"merged", result.Merged,
		"pushed", result.Pushed,
		"clock", result.Clock)

	return result, nil
}

// push отправляет snapshot реплики и сливает ответ authority
func (s *service) push(ctx context.Context, replica *state.Replica) error {
	data, err := state.Encode(replica.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for push: %w", err)
	}

	pushResp, err := s.apiClient.Push(ctx, api.PushRequest{Snapshot: data})
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	merged, err := state.Decode(pushResp.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}

	if err := replica.Merge(merged); err != nil {
		return fmt.Errorf("failed to merge push response: %w", err)
	}

	return nil
}

// Watch подписывается на websocket-уведомления и запускает Sync
// на каждое изменение authority
func (s *service) Watch(ctx context.Context, replica *state.Replica) error {
	notifications, err := s.apiClient.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	s.logger.Info("Watching for authority changes")

	for {
		select {
		case n, open := <-notifications:
			if !open {
				return fmt.Errorf("notification stream closed")
			}
			if n.Clock <= replica.Clock() {
				// Наше же изменение вернулось эхом
				continue
			}
			if _, err := s.Sync(ctx, replica); err != nil {
				s.logger.Error("Sync after notification failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// fail переводит реплику в failed и возвращает исходную ошибку.
// Брошенная по дедлайну синхронизация получает reason "timeout".
func (s *service) fail(ctx context.Context, replica *state.Replica, err error) error {
	reason := err.Error()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = "timeout"
	}
	replica.MarkSyncFailed(reason)

	s.logger.Error("Synchronization failed", "reason", reason)
	return err
}
