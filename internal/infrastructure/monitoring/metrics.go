package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "kucharka"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Recipe collection
	recipesCreatedTotal prometheus.Counter
	recipesDeletedTotal prometheus.Counter
	recipesStored       prometheus.Gauge
	storageFallbacks    *prometheus.CounterVec
	importsTotal        *prometheus.CounterVec

	// AI gateway
	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec

	// Cooking mode
	cookingSessions prometheus.Gauge
	wakeLocksHeld   prometheus.Gauge
}

// NewMetricsCollector creates a collector on its own registry, so several
// instances can coexist in tests.
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger,
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		recipesCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipes_created_total",
				Help:      "Recipes added to the collection",
			},
		),
		recipesDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipes_deleted_total",
				Help:      "Recipes removed from the collection",
			},
		),
		recipesStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "recipes_stored",
				Help:      "Recipes in the persisted collection after the last write",
			},
		),
		storageFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_seed_fallbacks_total",
				Help:      "Loads that fell back to the seed collection",
			},
			[]string{"reason"},
		),
		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipe_imports_total",
				Help:      "Recipe imports from URLs",
			},
			[]string{"method", "status"},
		),

		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ai_requests_total",
				Help:      "Total number of AI requests",
			},
			[]string{"provider", "operation", "status"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ai_request_duration_seconds",
				Help:      "AI request duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"provider", "operation"},
		),

		cookingSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cooking_sessions_active",
				Help:      "Open cooking mode sessions",
			},
		),
		wakeLocksHeld: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "wake_locks_held",
				Help:      "Keep-awake leases currently held",
			},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			m.httpResponseSize.WithLabelValues(c.Request.Method, path).Observe(float64(size))
		}
	}
}

func (m *MetricsCollector) RecipeCreated() {
	m.recipesCreatedTotal.Inc()
}

func (m *MetricsCollector) RecipeDeleted() {
	m.recipesDeletedTotal.Inc()
}

func (m *MetricsCollector) RecipesStored(n int) {
	m.recipesStored.Set(float64(n))
}

// StorageFallback counts a load that used the seed collection
func (m *MetricsCollector) StorageFallback(reason string) {
	m.storageFallbacks.WithLabelValues(reason).Inc()
}

// RecipeImported counts an import. method is "structured" or "ai".
func (m *MetricsCollector) RecipeImported(method, status string) {
	m.importsTotal.WithLabelValues(method, status).Inc()
}

// AIRequest records one provider call
func (m *MetricsCollector) AIRequest(provider, operation, status string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	m.aiRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

func (m *MetricsCollector) CookingSessions(n int) {
	m.cookingSessions.Set(float64(n))
}

// WakeLocks exposes the gauge the wake lock registry maintains
func (m *MetricsCollector) WakeLocks() prometheus.Gauge {
	return m.wakeLocksHeld
}

// Registry exposes the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
