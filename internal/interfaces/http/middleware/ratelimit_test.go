package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(ctx, 3, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := range 3 {
		ok, remaining := limiter.Allow("10.0.0.1")
		assert.True(t, ok, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}
	ok, _ := limiter.Allow("10.0.0.1")
	assert.False(t, ok)

	ok, _ = limiter.Allow("10.0.0.2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, remaining := limiter.Allow("10.0.0.1")
	assert.True(t, ok, "window resets")
	assert.Equal(t, 2, remaining)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(ctx, 1, time.Minute)))
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = serve(router, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, dto.ErrCodeRateLimited, decode(t, w).Error.Code)
}
