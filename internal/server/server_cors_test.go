package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grokcon/registry-api/internal/catalog"
	"github.com/grokcon/registry-api/internal/config"
)

func TestCORSDefault(t *testing.T) {
	server := setupTestServer(t)

	for _, target := range []string{"/components", "/components/badge", "/components/missing", "/nope", "/health"} {
		t.Run(target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			req.Header.Set("Origin", "https://anywhere.example.com")
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	server := setupTestServer(t)

	for _, target := range []string{"/components/badge/install", "/search", "/unknown"} {
		t.Run(target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, target, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "POST")
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	cfg := config.Default()
	cfg.Server.AllowedOrigins = []string{"https://app.example.com", "https://dashboard.example.com"}

	store, err := catalog.LoadStore("")
	require.NoError(t, err)
	server := New(cfg, store, nil, WithMetricsRegistry(prometheus.NewRegistry()))

	tests := []struct {
		name           string
		origin         string
		expectedOrigin string
	}{
		{name: "allowed origin", origin: "https://app.example.com", expectedOrigin: "https://app.example.com"},
		{name: "second allowed origin", origin: "https://dashboard.example.com", expectedOrigin: "https://dashboard.example.com"},
		{name: "unlisted origin", origin: "https://evil.com", expectedOrigin: ""},
		{name: "no origin header", origin: "", expectedOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/components", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSWildcardEntry(t *testing.T) {
	handler := corsMiddleware([]string{"*", "https://app.example.com"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://other.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}
