package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// HashAuthKey хеширует auth_key через SHA256.
// auth_key уже защищен через Argon2id, сервер хранит только этот хеш.
func HashAuthKey(authKey []byte) (string, error) {
	if len(authKey) == 0 {
		return "", fmt.Errorf("auth key cannot be empty")
	}
	hash := sha256.Sum256(authKey)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyAuthKeyHash проверяет присланный клиентом хеш против сохраненного.
// Сравнение константное по времени.
func VerifyAuthKeyHash(authKeyHash, storedHash string) error {
	if authKeyHash == "" {
		return fmt.Errorf("auth key hash cannot be empty")
	}
	if storedHash == "" {
		return fmt.Errorf("stored hash cannot be empty")
	}
	if subtle.ConstantTimeCompare([]byte(authKeyHash), []byte(storedHash)) != 1 {
		return fmt.Errorf("invalid auth key")
	}
	return nil
}

// HashToken хеширует refresh token для хранения в БД сервера.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
