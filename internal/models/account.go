package models

import "time"

// Account представляет учетную запись на сервере синхронизации.
// Не путать с User: User — сущность контент-графа, реплицируемая между
// клиентами, Account — то, чем клиент аутентифицируется на authority.
type Account struct {
	ID          string    `json:"id"`            // UUID учетной записи
	Username    string    `json:"username"`      // уникальный username
	AuthKeyHash string    `json:"auth_key_hash"` // SHA256 хеш auth_key
	PublicSalt  string    `json:"public_salt"`   // base64 encoded salt (32 bytes)
	CreatedAt   time.Time `json:"created_at"`    // время создания
	UpdatedAt   time.Time `json:"updated_at"`    // время последнего обновления
}

// RefreshToken представляет refresh token учетной записи
type RefreshToken struct {
	ID        string    `json:"id"`         // UUID токена
	AccountID string    `json:"account_id"` // ID учетной записи
	TokenHash string    `json:"token_hash"` // SHA256 хеш токена
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
