package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "elms_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leaveApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_leave_applications_total",
		Help: "Leave requests submitted, by leave type",
	}, []string{"leave_type"})

	leaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_leave_decisions_total",
		Help: "Leave decisions by outcome and reviewer role",
	}, []string{"decision", "role"})

	hrReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_hr_registration_reviews_total",
		Help: "HR onboarding decisions",
	}, []string{"decision"})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_logins_total",
		Help: "Login attempts by role and result",
	}, []string{"role", "result"})

	notificationDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elms_notification_deliveries_total",
		Help: "Outbound notifications by stage and result",
	}, []string{"stage", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func ObserveLeaveApplied(leaveType string) {
	leaveApplications.WithLabelValues(leaveType).Inc()
}

func ObserveLeaveDecision(decision, role string) {
	leaveDecisions.WithLabelValues(decision, role).Inc()
}

func ObserveHRReview(decision string) {
	hrReviews.WithLabelValues(decision).Inc()
}

func ObserveLogin(role, result string) {
	logins.WithLabelValues(role, result).Inc()
}

// ObserveNotification tracks the outbox (stage "publish") and the mail
// transport (stage "send").
func ObserveNotification(stage, result string) {
	notificationDeliveries.WithLabelValues(stage, result).Inc()
}

// GinMiddleware records every request under its route template, not the raw path.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
