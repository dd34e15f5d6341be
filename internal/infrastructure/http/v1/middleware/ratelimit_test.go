package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("client-a")
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, retryAfter := l.Allow("client-a")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 61)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)

	ok, _ := l.Allow("client-a")
	require.True(t, ok)

	ok, _ = l.Allow("client-b")
	assert.True(t, ok, "a saturated client must not affect others")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return current }

	ok, _ := l.Allow("client-a")
	require.True(t, ok)
	ok, _ = l.Allow("client-a")
	require.True(t, ok)

	ok, _ = l.Allow("client-a")
	require.False(t, ok)

	// After the window passes the old hits expire.
	current = current.Add(61 * time.Second)
	ok, _ = l.Allow("client-a")
	assert.True(t, ok)
}

func TestRateLimit_Returns429WithRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(second, req)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), `"success":false`)
}
