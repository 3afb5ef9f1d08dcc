package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-elms/internal/observability/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(metrics.GinMiddleware())
	r.GET("/api/employee/leaves", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", metrics.Handler())

	metrics.ObserveLeaveDecision("Approved", "HR")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee/leaves", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Contains(t, body, `elms_http_requests_total{method="GET",path="/api/employee/leaves",status="200"}`)
	assert.Contains(t, body, `elms_leave_decisions_total{decision="Approved",role="HR"}`)
}
