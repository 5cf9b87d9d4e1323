package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig()))
	r.POST("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS(t *testing.T) {
	t.Run("preflight admits the client id header", func(t *testing.T) {
		router := newCORSRouter()

		req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", ClientIDHeader)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		// The middleware canonicalizes header names, so compare
		// case-insensitively.
		allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, allowed, strings.ToLower(ClientIDHeader))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("exposes quota and request id headers", func(t *testing.T) {
		router := newCORSRouter()

		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
		assert.Contains(t, exposed, strings.ToLower(RateLimitLimit))
		assert.Contains(t, exposed, strings.ToLower(RateLimitRemaining))
		assert.Contains(t, exposed, strings.ToLower(RateLimitReset))
		assert.Contains(t, exposed, strings.ToLower(RequestIDHeader))
	})
}
