package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("requests within limit are allowed", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute, discardLogger())
		defer limiter.Stop()

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("192.168.1.1"), "request %d should be allowed", i+1)
		}
	})

	t.Run("requests over limit are denied", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute, discardLogger())
		defer limiter.Stop()

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("192.168.1.2"))
		}
		assert.False(t, limiter.Allow("192.168.1.2"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute, discardLogger())
		defer limiter.Stop()

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("tokens refill after window", func(t *testing.T) {
		limiter := NewRateLimiter(1, 50*time.Millisecond, discardLogger())
		defer limiter.Stop()

		assert.True(t, limiter.Allow("10.0.0.3"))
		assert.False(t, limiter.Allow("10.0.0.3"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.3"))
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, discardLogger())
	defer limiter.Stop()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "192.168.1.5:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "remote addr",
			remote: "192.168.1.1:1234",
			want:   "192.168.1.1:1234",
		},
		{
			name:    "x-forwarded-for single",
			headers: map[string]string{"X-Forwarded-For": "10.0.0.1"},
			remote:  "192.168.1.1:1234",
			want:    "10.0.0.1",
		},
		{
			name:    "x-forwarded-for chain",
			headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"},
			remote:  "192.168.1.1:1234",
			want:    "10.0.0.1",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "10.0.0.2"},
			remote:  "192.168.1.1:1234",
			want:    "10.0.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
