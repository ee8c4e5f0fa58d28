package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат имени аккаунта:
// латинские буквы, цифры и нижнее подчеркивание
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля. Пароль участвует в
	// выводе аутентификационного ключа, короткие запрещаем.
	MinPasswordLen = 12
)

// ValidateUsername проверяет имя аккаунта перед регистрацией и логином
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("username cannot be empty")
	case len(username) < MinUsernameLen:
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	case !UsernamePattern.MatchString(username):
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю аккаунта
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}
