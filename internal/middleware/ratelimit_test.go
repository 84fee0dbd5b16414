package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(maxRequests int, window time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(maxRequests, window))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitEnforcesWindow(t *testing.T) {
	r := newLimitedRouter(2, time.Minute)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitConcurrentRequests(t *testing.T) {
	const limit = 5
	r := newLimitedRouter(limit, time.Minute)

	var (
		wg      sync.WaitGroup
		allowed atomic.Int64
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			if rec.Code == http.StatusOK {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(limit), allowed.Load())
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	r := newLimitedRouter(0, time.Minute)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
