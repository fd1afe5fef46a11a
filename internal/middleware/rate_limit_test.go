package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(max, window))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func TestRateLimitBlocksAfterMax(t *testing.T) {
	engine := newLimitedEngine(2, time.Minute)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitRemainingHeader(t *testing.T) {
	engine := newLimitedEngine(3, time.Minute)

	want := []string{"2", "1", "0"}
	for _, remaining := range want {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, remaining, w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitWindowSlides(t *testing.T) {
	limiter := newRateLimiter(1, 10*time.Millisecond)
	now := time.Now()

	limiter.tokens["1.2.3.4"] = []time.Time{now.Add(-time.Second)}
	limiter.cleanup(now)

	require.Empty(t, limiter.tokens["1.2.3.4"])
}
