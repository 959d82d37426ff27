// Package admin provides the internal metrics and health server
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server serves /metrics and /health on a separate port
type Server struct {
	logger *zap.Logger
	server *http.Server
	router *chi.Mux
}

// NewServer creates the admin server
func NewServer(port int, metrics http.Handler, health http.Handler, logger *zap.Logger) *Server {
	s := &Server{logger: logger.Named("admin-server")}
	s.router = s.setupRoutes(metrics, health)
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes(metrics, health http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Logger(s.logger))

	r.Method(http.MethodGet, "/metrics", metrics)
	r.Method(http.MethodGet, "/health", health)

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the admin server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting admin server", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the admin server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Logger creates a Chi-compatible logging middleware. Scrapes are logged at
// debug level only.
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Admin request",
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status_code", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
