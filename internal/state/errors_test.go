package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err      *Error
		wantKind ErrorKind
		wantMsg  string
	}{
		{err: NetworkError("connection refused"), wantKind: KindNetwork, wantMsg: "network: connection refused"},
		{err: SerializationError("unexpected EOF"), wantKind: KindSerialization, wantMsg: "serialization: unexpected EOF"},
		{err: MergeConflictError("duplicate id"), wantKind: KindMergeConflict, wantMsg: "merge conflict: duplicate id"},
		{err: UnauthorizedError("token expired"), wantKind: KindUnauthorized, wantMsg: "unauthorized: token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind.String(), func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestError_EmptyMessage(t *testing.T) {
	err := UnauthorizedError("")
	assert.Equal(t, "unauthorized", err.Error())
}

func TestKindOf(t *testing.T) {
	// Прямая ошибка
	kind, ok := KindOf(NetworkError("boom"))
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)

	// Ошибка в цепочке wrap
	wrapped := fmt.Errorf("sync failed: %w", MergeConflictError("bad snapshot"))
	kind, ok = KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindMergeConflict, kind)

	// Посторонняя ошибка
	_, ok = KindOf(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}
