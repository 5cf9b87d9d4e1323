package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcraft/server/internal/shared/config"
)

// One App per test binary; the metrics registry is process-global.
func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		API: config.APIConfig{Prefix: "/api/v1", Version: "1.0.0"},
		AI: config.AIConfig{
			Text:  config.TextConfig{APIKey: "test", Model: "test-model"},
			Image: config.ImageConfig{APIKey: "test", Model: "test-image-model"},
		},
		Upload: config.UploadConfig{
			Dir:               t.TempDir(),
			MaxFileSize:       5 * 1024 * 1024,
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
			AllowedMIMETypes:  []string{"image/jpeg", "image/png", "image/webp"},
		},
		RateLimit: config.RateLimitConfig{Requests: 100, Window: time.Hour},
		Log:       config.LogConfig{Level: "error", Format: "json"},
	}

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Stop)
	return app
}

func TestApp(t *testing.T) {
	app := newTestApp(t)

	t.Run("health endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "1.0.0", body["version"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "adcraft_http_requests_total")
	})

	t.Run("generation routes are registered", func(t *testing.T) {
		// An empty body fails validation, proving the route is wired.
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("image retrieval is registered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/images/missing.png", nil)
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("request id header is set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
