package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsCollector_HTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetricsCollector(zap.NewNop())

	router := gin.New()
	router.Use(m.HTTPMiddleware())
	router.GET("/recipes/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes/2", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/recipes/:id", "200")))
}

func TestMetricsCollector_Handler(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())
	m.AIRequest("mock", "generate_recipe", "success", 150*time.Millisecond)
	m.RecipesStored(3)
	m.WakeLocks().Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `kucharka_ai_requests_total{operation="generate_recipe",provider="mock",status="success"} 1`)
	assert.Contains(t, body, "kucharka_recipes_stored 3")
	assert.Contains(t, body, "kucharka_wake_locks_held 1")
}

func TestTracingProvider_Disabled(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{ServiceName: "kucharka"}, zap.NewNop())
	require.NoError(t, err)

	ctx, span := tp.StartAISpan(context.Background(), "mock", "generate_recipe")
	span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
