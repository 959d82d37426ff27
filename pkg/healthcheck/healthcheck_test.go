package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticChecker(status Status, message string) Checker {
	return NewCustomChecker("static", func(context.Context) (Status, string, interface{}) {
		return status, message, nil
	})
}

func TestHealthCheck_Check_NoCheckers(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	response := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Empty(t, response.Checks)
}

func TestHealthCheck_Check_AggregatesStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zap.NewNop())
			hc.SetCacheTTL(0)
			for i, s := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(s, ""))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			require.Len(t, response.Checks, len(tt.statuses))
			assert.Equal(t, "a", response.Checks[0].Name)
		})
	}
}

func TestHealthCheck_Check_UsesCache(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	calls := 0
	hc.Register("counting", NewCustomChecker("counting", func(context.Context) (Status, string, interface{}) {
		calls++
		return StatusHealthy, "", nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())

	assert.Equal(t, 1, calls)
}

func TestPingChecker(t *testing.T) {
	boom := errors.New("connection refused")

	ok := NewPingChecker(func(context.Context) error { return nil }, true).Check(context.Background())
	assert.Equal(t, StatusHealthy, ok.Status)

	critical := NewPingChecker(func(context.Context) error { return boom }, true).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, critical.Status)
	assert.Equal(t, "connection refused", critical.Message)

	optional := NewPingChecker(func(context.Context) error { return boom }, false).Check(context.Background())
	assert.Equal(t, StatusDegraded, optional.Status)
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hc := New("1.0.0", zap.NewNop())
	hc.Register("store", staticChecker(StatusUnhealthy, "down"))

	router := gin.New()
	router.GET("/health", hc.Handler())
	router.GET("/health/live", hc.LivenessHandler())
	router.GET("/health/ready", hc.ReadinessHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServeHTTP(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("ai", staticChecker(StatusDegraded, "slow"))

	w := httptest.NewRecorder()
	hc.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestCheck_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Check{Name: "x", Status: StatusHealthy, Duration: 1500 * time.Millisecond})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration_ms":1500`)
}
