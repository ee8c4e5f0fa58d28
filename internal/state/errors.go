package state

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует ошибки синхронизации.
// Набор закрытый: ядро не порождает других видов ошибок.
type ErrorKind int

const (
	// KindNetwork удаленная сторона недоступна или запрос прерван.
	// Повторная попытка — ответственность вызывающего, не ядра.
	KindNetwork ErrorKind = iota + 1

	// KindSerialization некорректные байты при декодировании.
	// Фатально для конкретного вызова Decode, in-memory реплика не затронута.
	KindSerialization

	// KindMergeConflict foreign snapshot внутренне противоречив.
	// Merge отклоняется целиком, локальная реплика остается нетронутой.
	KindMergeConflict

	// KindUnauthorized удаленная сторона отклонила учетные данные.
	KindUnauthorized
)

// String возвращает читаемое имя вида ошибки.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindSerialization:
		return "serialization"
	case KindMergeConflict:
		return "merge conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error — ошибка синхронизации с закрытым набором видов.
// Несет только вид и сообщение: вызывающему этого достаточно,
// чтобы решить про retry, backoff или user-visible failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NetworkError создает ошибку вида Network.
func NetworkError(msg string) *Error {
	return &Error{Kind: KindNetwork, Message: msg}
}

// SerializationError создает ошибку вида Serialization.
func SerializationError(msg string) *Error {
	return &Error{Kind: KindSerialization, Message: msg}
}

// MergeConflictError создает ошибку вида MergeConflict.
func MergeConflictError(msg string) *Error {
	return &Error{Kind: KindMergeConflict, Message: msg}
}

// UnauthorizedError создает ошибку вида Unauthorized.
func UnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf извлекает вид ошибки из цепочки err.
// Возвращает (0, false), если в цепочке нет *state.Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
