package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/sitekeeper/internal/crypto"
	"github.com/iudanet/sitekeeper/internal/models"
	"github.com/iudanet/sitekeeper/internal/server/jwt"
	"github.com/iudanet/sitekeeper/internal/server/storage"
	"github.com/iudanet/sitekeeper/internal/validation"
	"github.com/iudanet/sitekeeper/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger   *slog.Logger
	accounts storage.AccountStorage
	tokens   storage.TokenStorage
	jwtSvc   *jwt.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, accounts storage.AccountStorage, tokens storage.TokenStorage, jwtSvc *jwt.Service) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: accounts,
		tokens:   tokens,
		jwtSvc:   jwtSvc,
	}
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрация новой учетной записи
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Проверка обязательных полей
	if req.AuthKeyHash == "" {
		h.sendError(w, "auth_key_hash is required", http.StatusBadRequest)
		return
	}
	if req.PublicSalt == "" {
		h.sendError(w, "public_salt is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	account := &models.Account{
		ID:          uuid.New().String(),
		Username:    req.Username,
		AuthKeyHash: req.AuthKeyHash, // SHA256 хеш auth_key от клиента
		PublicSalt:  req.PublicSalt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAccountAlreadyExists) {
			h.logger.WarnContext(ctx, "account already exists", slog.String("username", req.Username))
			h.sendError(w, "username already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create account", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "account registered successfully",
		slog.String("username", req.Username),
		slog.String("account_id", account.ID))

	resp := api.RegisterResponse{
		AccountID: account.ID,
		Message:   "Account registered successfully",
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// GetSalt обрабатывает GET /api/v1/auth/salt/{username}
// Получение public_salt учетной записи
func (h *AuthHandler) GetSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Извлекаем username из path parameter (Go 1.22+)
	username := r.PathValue("username")
	if username == "" {
		h.sendError(w, "username is required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			h.logger.WarnContext(ctx, "account not found", slog.String("username", username))
			h.sendError(w, "account not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get account", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SaltResponse{
		PublicSalt: account.PublicSalt,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Login обрабатывает POST /api/v1/auth/login
// Аутентификация учетной записи
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.AuthKeyHash == "" {
		h.sendError(w, "auth_key_hash is required", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			h.logger.WarnContext(ctx, "login failed: account not found", slog.String("username", req.Username))
			h.sendError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get account", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Клиент отправляет SHA256 хеш от auth_key (детерминированный),
	// сравниваем с сохраненным хешем за константное время
	if err := crypto.VerifyAuthKeyHash(req.AuthKeyHash, account.AuthKeyHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid auth key", slog.String("username", req.Username))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if !h.issueTokens(ctx, w, account) {
		return
	}

	// Обновляем updated_at, не критично при ошибке
	if err := h.accounts.TouchAccount(ctx, account.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to touch account", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "account logged in successfully",
		slog.String("username", req.Username),
		slog.String("account_id", account.ID))
}

// Refresh обрабатывает POST /api/v1/auth/refresh
// Обмен refresh token на новую пару токенов (rotation)
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		h.sendError(w, "refresh_token is required", http.StatusUnauthorized)
		return
	}

	// В БД лежат только хеши токенов
	tokenHash := crypto.HashToken(req.RefreshToken)

	storedToken, err := h.tokens.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			h.sendError(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if time.Now().After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("account_id", storedToken.AccountID))
		h.sendError(w, "refresh token expired", http.StatusUnauthorized)
		return
	}

	account, err := h.accounts.GetAccountByID(ctx, storedToken.AccountID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get account", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Старый refresh token одноразовый
	if err := h.tokens.DeleteRefreshToken(ctx, tokenHash); err != nil {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
	}

	if !h.issueTokens(ctx, w, account) {
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("account_id", account.ID))
}

// Logout обрабатывает POST /api/v1/auth/logout
// Отзывает все refresh tokens учетной записи.
// Маршрут закрыт AuthMiddleware, account_id берем из контекста.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := GetAccountID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deletedCount, err := h.tokens.DeleteAccountTokens(ctx, accountID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete account tokens", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "account logged out successfully",
		slog.String("account_id", accountID),
		slog.Int("tokens_deleted", deletedCount))

	w.WriteHeader(http.StatusNoContent)
}

// issueTokens генерирует пару токенов, сохраняет хеш refresh token
// и пишет TokenResponse. Возвращает false если ответ уже отправлен с ошибкой.
func (h *AuthHandler) issueTokens(ctx context.Context, w http.ResponseWriter, account *models.Account) bool {
	accessToken, expiresIn, err := h.jwtSvc.GenerateAccessToken(account.ID, account.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return false
	}

	refreshToken, expiresAt, err := h.jwtSvc.GenerateRefreshToken()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return false
	}

	token := &models.RefreshToken{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		TokenHash: crypto.HashToken(refreshToken),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := h.tokens.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return false
	}

	resp := api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}

	h.sendJSON(w, resp, http.StatusOK)
	return true
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
