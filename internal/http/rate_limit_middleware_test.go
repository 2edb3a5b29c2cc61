package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
	apikeysHTTP "github.com/keyfort/keyfort/internal/apikeys/http"
)

// newRateLimitRouter builds a router that injects the given API key into the
// request context before the rate limit middleware runs.
func newRateLimitRouter(apiKey *apikeysDomain.APIKey, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if apiKey != nil {
			ctx := apikeysHTTP.WithAPIKey(c.Request.Context(), apiKey)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(rps, burst, logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func newRateLimitKey(label string) *apikeysDomain.APIKey {
	return &apikeysDomain.APIKey{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Label:     label,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitRouter(newRateLimitKey("deploy"), 10.0, 20)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitRouter(newRateLimitKey("deploy"), 1.0, 2)

	// Burst capacity succeeds
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

// TestRateLimitMiddleware_IndependentLimitsPerKey verifies one key exhausting
// its bucket does not affect another.
func TestRateLimitMiddleware_IndependentLimitsPerKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	keyA := newRateLimitKey("service-a")
	keyB := newRateLimitKey("service-b")
	middleware := RateLimitMiddleware(1.0, 1, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		label := c.GetHeader("X-Test-Key")
		apiKey := keyA
		if label == "service-b" {
			apiKey = keyB
		}
		ctx := apikeysHTTP.WithAPIKey(c.Request.Context(), apiKey)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Exhaust key A's bucket
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Test-Key", "service-a")
		router.ServeHTTP(w, req)
	}

	// Key B still has its full bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Test-Key", "service-b")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRateLimitMiddleware_MissingAPIKey verifies the middleware rejects
// requests that reach it without an authenticated key in context.
func TestRateLimitMiddleware_MissingAPIKey(t *testing.T) {
	router := newRateLimitRouter(nil, 10.0, 20)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
