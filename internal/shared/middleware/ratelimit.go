package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/adcraft/server/internal/shared/errors"
	"github.com/adcraft/server/internal/shared/metrics"
	"github.com/adcraft/server/internal/shared/ratelimit"
)

const (
	// ClientIDHeader identifies the caller for rate limiting purposes.
	ClientIDHeader = "Client-ID"

	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitReset is the header for reset time.
	RateLimitReset = "X-RateLimit-Reset"
)

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Limit is the maximum number of requests per window.
	Limit int
	// Window is the time window.
	Window time.Duration
	// KeyFunc generates the rate limit key from the request.
	// Default uses the Client-ID header, falling back to client IP.
	KeyFunc func(*gin.Context) string
	// Metrics counts rejections when set.
	Metrics *metrics.Metrics
}

// DefaultKeyFunc keys on the caller-supplied Client-ID header, falling
// back to the client IP when the header is absent.
func DefaultKeyFunc(c *gin.Context) string {
	if id := c.GetHeader(ClientIDHeader); id != "" {
		return "client:" + id
	}
	return "ip:" + c.ClientIP()
}

// RateLimit returns a middleware that limits requests using the given
// limiter. Requests over quota are rejected with 403.
func RateLimit(limiter ratelimit.Limiter, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultKeyFunc
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			// On limiter error, admit the request
			c.Next()
			return
		}

		remaining, _ := limiter.Remaining(ctx, key, cfg.Limit, cfg.Window)

		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))
		c.Header(RateLimitReset, strconv.FormatInt(time.Now().Add(cfg.Window).Unix(), 10))

		if !allowed {
			if cfg.Metrics != nil {
				cfg.Metrics.RateLimitRejections.Inc()
			}
			appErr := apperrors.RateLimited("")
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse(GetRequestID(c)))
			return
		}

		c.Next()
	}
}
