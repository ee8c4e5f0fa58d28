package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// AccountIDKey ключ для хранения account_id в контексте
	AccountIDKey contextKey = "account_id"
	// UsernameKey ключ для хранения username в контексте
	UsernameKey contextKey = "username"
)

// GetAccountID извлекает account_id из контекста запроса
func GetAccountID(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(string)
	return accountID, ok
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
