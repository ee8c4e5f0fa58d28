package models

// SyncState перечисляет состояния жизненного цикла синхронизации реплики.
type SyncState string

const (
	// SyncStateSynced реплика согласована с удаленной стороной
	SyncStateSynced SyncState = "synced"
	// SyncStatePending есть локальные изменения, ожидающие синхронизации
	SyncStatePending SyncState = "pending"
	// SyncStateSyncing синхронизация выполняется
	SyncStateSyncing SyncState = "syncing"
	// SyncStateFailed последняя попытка синхронизации завершилась ошибкой
	SyncStateFailed SyncState = "failed"
)

// SyncStatus описывает текущее состояние синхронизации реплики.
// Reason заполняется только в состоянии failed.
type SyncStatus struct {
	State  SyncState `json:"state"`
	Reason string    `json:"reason,omitempty"`
}

// StatusSynced возвращает статус "синхронизировано".
// Это начальное состояние новой реплики.
func StatusSynced() SyncStatus {
	return SyncStatus{State: SyncStateSynced}
}

// StatusPending возвращает статус "есть несинхронизированные изменения".
func StatusPending() SyncStatus {
	return SyncStatus{State: SyncStatePending}
}

// StatusSyncing возвращает статус "синхронизация в процессе".
func StatusSyncing() SyncStatus {
	return SyncStatus{State: SyncStateSyncing}
}

// StatusFailed возвращает статус "ошибка синхронизации" с причиной.
func StatusFailed(reason string) SyncStatus {
	return SyncStatus{State: SyncStateFailed, Reason: reason}
}

// IsSynced сообщает, согласована ли реплика с удаленной стороной.
func (s SyncStatus) IsSynced() bool {
	return s.State == SyncStateSynced
}

// IsPending сообщает, ожидают ли локальные изменения синхронизации.
func (s SyncStatus) IsPending() bool {
	return s.State == SyncStatePending
}

// IsSyncing сообщает, выполняется ли синхронизация прямо сейчас.
func (s SyncStatus) IsSyncing() bool {
	return s.State == SyncStateSyncing
}

// IsFailed сообщает, завершилась ли последняя попытка синхронизации ошибкой.
func (s SyncStatus) IsFailed() bool {
	return s.State == SyncStateFailed
}
