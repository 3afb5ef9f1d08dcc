package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(0, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitByUserSkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", middleware.RateLimitByUser(0, 0), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKeyedRateLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	limiter := middleware.NewKeyedRateLimiterWithClock(1, 1, func() time.Time { return now })

	first := limiter.GetLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))
	limiter.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(10 * time.Minute)
	limiter.GetLimiter("10.0.0.3")
	assert.Equal(t, 1, limiter.Len())
	assert.NotSame(t, first, limiter.GetLimiter("10.0.0.1"))
}
