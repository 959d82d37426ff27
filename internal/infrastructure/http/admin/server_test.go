package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/monitoring"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/healthcheck"
)

func TestAdminRoutes(t *testing.T) {
	logger := zap.NewNop()
	metrics := monitoring.NewMetricsCollector(logger)
	metrics.RecipeCreated()
	health := healthcheck.New("test", logger)

	s := NewServer(0, metrics.Handler(), health, logger)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "kucharka_recipes_created_total 1"))

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
