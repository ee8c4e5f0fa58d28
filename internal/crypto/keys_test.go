package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize, "salt должен быть %d bytes", SaltSize)

	// Проверяем, что соль не состоит из одних нулей
	hasNonZero := false
	for _, b := range salt {
		if b != 0 {
			hasNonZero = true
			break
		}
	}
	assert.True(t, hasNonZero, "salt не должна состоять из одних нулей")
}

func TestGenerateSaltBase64(t *testing.T) {
	saltBase64, err := GenerateSaltBase64()
	require.NoError(t, err)
	assert.NotEmpty(t, saltBase64)
	assert.Greater(t, len(saltBase64), 40, "Base64 encoded salt должна быть длиннее 40 символов")
}

func TestDeriveAuthKey(t *testing.T) {
	tests := []struct {
		name     string
		password string
		username string
		saltLen  int
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "successful key derivation",
			password: "super_secret_password_123",
			username: "alice",
			saltLen:  SaltSize,
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			username: "alice",
			saltLen:  SaltSize,
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
		{
			name:     "empty username",
			password: "password",
			username: "",
			saltLen:  SaltSize,
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "empty salt",
			password: "password",
			username: "alice",
			saltLen:  0,
			wantErr:  true,
			errMsg:   "salt cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salt := make([]byte, tt.saltLen)
			for i := range salt {
				salt[i] = byte(i)
			}

			key, err := DeriveAuthKey(tt.password, tt.username, salt)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, key)
			} else {
				require.NoError(t, err)
				assert.Len(t, key, Argon2KeyLen, "auth key должен быть %d bytes", Argon2KeyLen)
			}
		})
	}
}

func TestDeriveAuthKey_Determinism(t *testing.T) {
	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i * 2)
	}

	key1, err1 := DeriveAuthKey("test_password_123", "bob", salt)
	require.NoError(t, err1)

	key2, err2 := DeriveAuthKey("test_password_123", "bob", salt)
	require.NoError(t, err2)

	assert.Equal(t, key1, key2, "одинаковые входные данные должны давать одинаковый ключ")
}

func TestDeriveAuthKey_DifferentInputs(t *testing.T) {
	salt1 := make([]byte, SaltSize)
	salt2 := make([]byte, SaltSize)
	for i := range salt2 {
		salt2[i] = byte(i + 1)
	}

	base, err := DeriveAuthKey("password", "alice", salt1)
	require.NoError(t, err)

	otherSalt, err := DeriveAuthKey("password", "alice", salt2)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSalt, "разные соли должны давать разные ключи")

	otherPassword, err := DeriveAuthKey("password2", "alice", salt1)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPassword, "разные пароли должны давать разные ключи")

	otherUser, err := DeriveAuthKey("password", "carol", salt1)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherUser, "разные username должны давать разные ключи")
}

func TestDeriveAuthKeyFromBase64Salt(t *testing.T) {
	tests := []struct {
		name       string
		saltBase64 string
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "successful derivation from base64",
			saltBase64: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
			wantErr:    false,
		},
		{
			name:       "invalid base64",
			saltBase64: "invalid-base64!!!",
			wantErr:    true,
			errMsg:     "failed to decode salt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveAuthKeyFromBase64Salt("password", "alice", tt.saltBase64)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, key)
			} else {
				require.NoError(t, err)
				assert.Len(t, key, Argon2KeyLen)
			}
		})
	}
}
