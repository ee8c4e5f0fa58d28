package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		wantLevel      string
		expectedStatus int
	}{
		{
			name: "200 logged at info",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("success"))
			},
			wantLevel:      "INFO",
			expectedStatus: http.StatusOK,
		},
		{
			name: "404 logged at warn",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantLevel:      "WARN",
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "500 logged at error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantLevel:      "ERROR",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
			w := httptest.NewRecorder()

			LoggingMiddleware(logger)(tt.handler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, buf.String(), "HTTP request")
			assert.Contains(t, buf.String(), "level="+tt.wantLevel)
			assert.Contains(t, buf.String(), "path=/api/v1/sync")
		})
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := LoggingMiddleware(logger, "/api/v1/health")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	mw(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, strings.TrimSpace(buf.String()))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
	w = httptest.NewRecorder()
	mw(handler).ServeHTTP(w, req)

	assert.NotEmpty(t, buf.String())
}
