package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для деривации auth_key
const (
	// Argon2Time количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory объем памяти в KB (64MB)
	Argon2Memory = 64 * 1024
	// Argon2Threads количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize размер соли в байтах
	SaltSize = 32
)

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 генерирует криптографически случайную соль и возвращает ее в Base64
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveAuthKey деривирует auth_key из пароля учетной записи.
// Пароль никогда не покидает клиента: на сервер уходит только SHA256
// хеш производного ключа (см. HashAuthKey).
// Username подмешивается в соль, чтобы одинаковые пароли у разных
// учетных записей давали разные ключи.
func DeriveAuthKey(password, username string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("salt cannot be empty")
	}

	// Username как контекст деривации
	input := append([]byte(nil), salt...)
	input = append(input, []byte(username)...)

	key := argon2.IDKey([]byte(password), input, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)
	return key, nil
}

// DeriveAuthKeyFromBase64Salt деривирует auth_key, принимая соль в Base64
// (в таком виде сервер хранит и отдает public_salt).
func DeriveAuthKeyFromBase64Salt(password, username, saltBase64 string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return DeriveAuthKey(password, username, salt)
}
