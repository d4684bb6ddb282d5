// Package metrics регистрирует метрики Prometheus для HTTP и бизнес-событий.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик приложения.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ReviewsCreated       prometheus.Counter
	ReplyMutations       *prometheus.CounterVec
	ReportsCreated       prometheus.Counter
	ReportsResolved      *prometheus.CounterVec
	UploadsRejected      *prometheus.CounterVec
	NotificationsCreated *prometheus.CounterVec
	RealtimeClients      prometheus.Gauge

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	RateLimitHits *prometheus.CounterVec
}

var (
	metrics  *Metrics
	initOnce sync.Once
)

// Get возвращает глобальный набор метрик, регистрируя его при первом вызове.
func Get() *Metrics {
	initOnce.Do(func() {
		metrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "indievia_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
				[]string{"method", "path"},
			),
			HTTPRequestsInFlight: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "indievia_http_requests_in_flight",
					Help: "Number of HTTP requests currently being processed",
				},
			),
			ReviewsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "indievia_reviews_created_total",
					Help: "Total number of reviews created",
				},
			),
			ReplyMutations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_review_reply_mutations_total",
					Help: "Review reply mutations by operation",
				},
				[]string{"operation"},
			),
			ReportsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "indievia_reports_created_total",
					Help: "Total number of review reports",
				},
			),
			ReportsResolved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_reports_resolved_total",
					Help: "Resolved moderation reports by action",
				},
				[]string{"action"},
			),
			UploadsRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_uploads_rejected_total",
					Help: "Uploads rejected by validation",
				},
				[]string{"kind"},
			),
			NotificationsCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_notifications_created_total",
					Help: "Notifications created by kind",
				},
				[]string{"kind"},
			),
			RealtimeClients: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "indievia_realtime_clients",
					Help: "Connected WebSocket clients",
				},
			),
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_cache_hits_total",
					Help: "Cache hits by namespace",
				},
				[]string{"namespace"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_cache_misses_total",
					Help: "Cache misses by namespace",
				},
				[]string{"namespace"},
			),
			RateLimitHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "indievia_rate_limit_hits_total",
					Help: "Requests rejected by the rate limiter",
				},
				[]string{"path"},
			),
		}
	})
	return metrics
}

// GinHandler отдаёт /metrics в формате Prometheus.
func GinHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware собирает метрики HTTP-запросов.
func Middleware() gin.HandlerFunc {
	m := Get()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordReviewCreated() { Get().ReviewsCreated.Inc() }

func RecordReplyMutation(operation string) { Get().ReplyMutations.WithLabelValues(operation).Inc() }

func RecordReportCreated() { Get().ReportsCreated.Inc() }

func RecordReportResolved(action string) { Get().ReportsResolved.WithLabelValues(action).Inc() }

func RecordUploadRejected(kind string) { Get().UploadsRejected.WithLabelValues(kind).Inc() }

func RecordNotification(kind string) { Get().NotificationsCreated.WithLabelValues(kind).Inc() }

func RecordCacheHit(namespace string) { Get().CacheHits.WithLabelValues(namespace).Inc() }

func RecordCacheMiss(namespace string) { Get().CacheMisses.WithLabelValues(namespace).Inc() }

func RecordRateLimitHit(path string) { Get().RateLimitHits.WithLabelValues(path).Inc() }

// SetRealtimeClients выставляет число активных WebSocket подключений.
func SetRealtimeClients(n int) { Get().RealtimeClients.Set(float64(n)) }
