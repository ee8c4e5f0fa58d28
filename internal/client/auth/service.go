package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/sitekeeper/internal/client/storage"
	"github.com/iudanet/sitekeeper/internal/crypto"
	"github.com/iudanet/sitekeeper/internal/validation"
	pkgapi "github.com/iudanet/sitekeeper/pkg/api"
)

// AuthAPI описывает используемую сервисом часть API клиента
type AuthAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	GetSalt(ctx context.Context, username string) (*pkgapi.SaltResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, req pkgapi.RefreshRequest) (*pkgapi.TokenResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	apiClient AuthAPI
	authStore storage.AuthStorage
	logger    *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(apiClient AuthAPI, authStore storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		authStore: authStore,
		logger:    logger,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	AccountID  string // UUID учетной записи
	Username   string // username
	PublicSalt string // public salt (base64)
}

// Register регистрирует новую учетную запись.
// Пароль не покидает клиента: на сервер уходит только
// SHA256 хеш Argon2id-производного ключа.
func (s *Service) Register(ctx context.Context, username, password string) (*RegisterResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Генерируем публичную соль
	publicSaltBase64, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// 2. Деривируем auth_key из пароля
	authKey, err := crypto.DeriveAuthKeyFromBase64Salt(password, username, publicSaltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to derive auth key: %w", err)
	}

	// 3. Хешируем auth_key для отправки на сервер
	authKeyHash, err := crypto.HashAuthKey(authKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	// 4. Отправляем запрос на регистрацию
	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  publicSaltBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("Account registered", "username", username)

	return &RegisterResult{
		AccountID:  resp.AccountID,
		Username:   username,
		PublicSalt: publicSaltBase64,
	}, nil
}

// LoginResult содержит результат авторизации
type LoginResult struct {
	AccessToken  string // JWT access token
	RefreshToken string // refresh token
	ExpiresIn    int64  // время жизни access token в секундах
	Username     string // username
	PublicSalt   string // public salt (base64)
}

// Login выполняет аутентификацию и сохраняет токены в хранилище
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Получаем public_salt с сервера
	saltResp, err := s.apiClient.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	// 2. Деривируем auth_key
	authKey, err := crypto.DeriveAuthKeyFromBase64Salt(password, username, saltResp.PublicSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive auth key: %w", err)
	}

	// 3. Хешируем auth_key
	authKeyHash, err := crypto.HashAuthKey(authKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	// 4. Отправляем запрос на логин
	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	// 5. Сохраняем токены локально
	if err := s.saveTokens(ctx, username, saltResp.PublicSalt, resp); err != nil {
		return nil, err
	}

	s.logger.Info("Logged in", "username", username)

	return &LoginResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Username:     username,
		PublicSalt:   saltResp.PublicSalt,
	}, nil
}

// Refresh обновляет пару токенов по сохраненному refresh token
func (s *Service) Refresh(ctx context.Context) error {
	auth, err := s.authStore.GetAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	resp, err := s.apiClient.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: auth.RefreshToken})
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	if err := s.saveTokens(ctx, auth.Username, auth.PublicSalt, resp); err != nil {
		return err
	}

	s.logger.Debug("Tokens refreshed", "username", auth.Username)
	return nil
}

// Logout удаляет локальные данные авторизации
func (s *Service) Logout(ctx context.Context) error {
	if err := s.authStore.DeleteAuth(ctx); err != nil {
		if err == storage.ErrAuthNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	s.logger.Info("Logged out")
	return nil
}

// IsAuthenticated проверяет наличие непросроченной сессии
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.authStore.IsAuthenticated(ctx)
}

// GetAuth возвращает сохраненные данные авторизации
func (s *Service) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	return s.authStore.GetAuth(ctx)
}

func (s *Service) saveTokens(ctx context.Context, username, publicSalt string, resp *pkgapi.TokenResponse) error {
	auth := &storage.AuthData{
		Username:     username,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		PublicSalt:   publicSalt,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if err := s.authStore.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	return nil
}
