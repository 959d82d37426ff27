package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/test/testutils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Environment: "production"},
		Server:     config.ServerConfig{EnableCORS: true, AllowedOrigins: []string{"https://kucharka.example"}},
		Monitoring: config.MonitoringConfig{HealthCheckPath: "/health"},
		RateLimit:  config.RateLimitConfig{Enable: true, RequestsPerMin: 60, BurstSize: 2},
	}
}

func newEngine(m *Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(m.RequestID(), m.ClientID(), m.Recovery())
	r.Any("/test", handlers...)
	return r
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	m := New(testConfig(), zap.NewNop())
	var seen string
	r := newEngine(m, func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", seen)
}

func TestClientID(t *testing.T) {
	m := New(testConfig(), zap.NewNop())
	var seen string
	r := newEngine(m, func(c *gin.Context) { seen = GetClientID(c) })

	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"default", "/test", "", DefaultClientID},
		{"header", "/test", "tab-1", "tab-1"},
		{"query", "/test?client=tab-2", "", "tab-2"},
		{"header wins", "/test?client=tab-2", "tab-1", "tab-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(ClientIDHeader, tt.header)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestRecovery_ReturnsErrorBody(t *testing.T) {
	m := New(testConfig(), zap.NewNop())
	r := newEngine(m, func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	testutils.AssertErrorResponse(t, w, http.StatusInternalServerError, apperrors.CodeInternal)
}

func TestRateLimit(t *testing.T) {
	m := New(testConfig(), zap.NewNop())
	r := gin.New()
	r.Use(m.RequestID(), m.ClientID())
	r.POST("/test", m.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(client string) int {
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set(ClientIDHeader, client)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	assert.Equal(t, http.StatusOK, do("b"), "limits are per client")

	m.SetRateLimit(config.RateLimitConfig{Enable: false})
	assert.Equal(t, http.StatusOK, do("a"))
}

func TestCORS(t *testing.T) {
	m := New(testConfig(), zap.NewNop())
	r := gin.New()
	r.Use(m.CORS())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://kucharka.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://kucharka.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
