// Package server provides the public HTTP server of the recipe API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/handlers"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/monitoring"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/healthcheck"
)

// Handlers bundles the route handlers of the API
type Handlers struct {
	Recipes     *handlers.RecipeHandlers
	Generation  *handlers.GenerationHandlers
	Search      *handlers.SearchHandlers
	Cooking     *handlers.CookingHandlers
	Preferences *handlers.PreferencesHandlers
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	engine     *gin.Engine
	server     *http.Server
	middleware *middleware.Middleware
	metrics    *monitoring.MetricsCollector
	health     *healthcheck.HealthCheck
	handlers   Handlers
}

// NewServer creates a new HTTP server instance. metrics may be nil.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mw *middleware.Middleware,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
	h Handlers,
) *Server {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:     cfg,
		logger:     logger.Named("http-server"),
		middleware: mw,
		metrics:    metrics,
		health:     health,
		handlers:   h,
	}
	s.engine = s.setupRouter()

	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// Engine exposes the router, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		s.logger.Warn("Invalid trusted proxies", zap.Error(err))
	}

	mw := s.middleware
	r.Use(mw.RequestID(), mw.Recovery(), mw.Logger(), mw.Tracing(), mw.Security(), mw.CORS(), mw.ClientID(), mw.MaxBody())
	if s.metrics != nil {
		r.Use(s.metrics.HTTPMiddleware())
	}

	healthPath := s.config.Monitoring.HealthCheckPath
	r.GET(healthPath, s.health.Handler())
	r.GET(healthPath+"/live", s.health.LivenessHandler())
	r.GET(healthPath+"/ready", s.health.ReadinessHandler())

	v1 := r.Group("/api/v1")
	s.setupAPIRoutes(v1)

	return r
}

// setupAPIRoutes configures REST API routes. Endpoints that call the AI
// provider are rate limited.
func (s *Server) setupAPIRoutes(r *gin.RouterGroup) {
	h := s.handlers
	limited := s.middleware.RateLimit()

	r.GET("/health", s.health.Handler())

	recipes := r.Group("/recipes")
	recipes.GET("", h.Recipes.ListRecipes)
	recipes.POST("", h.Recipes.CreateRecipe)
	recipes.POST("/import", limited, h.Recipes.ImportRecipe)
	recipes.GET("/:id", h.Recipes.GetRecipe)
	recipes.PUT("/:id", h.Recipes.UpdateRecipe)
	recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
	recipes.GET("/:id/print", h.Recipes.PrintRecipe)
	recipes.POST("/:id/image", limited, h.Recipes.RegenerateImage)

	r.GET("/categories", h.Recipes.Categories)

	generations := r.Group("/generations")
	generations.POST("", limited, h.Generation.Submit)
	generations.GET("/current", h.Generation.Current)
	generations.POST("/current/save", h.Generation.Save)
	generations.GET("/current/print", h.Generation.Print)
	generations.GET("/stream", h.Generation.Stream)

	r.POST("/search", limited, h.Search.Search)

	cooking := r.Group("/cooking-sessions")
	cooking.POST("", h.Cooking.Start)
	cooking.GET("/:id", h.Cooking.Get)
	cooking.POST("/:id/next", h.Cooking.Next)
	cooking.POST("/:id/previous", h.Cooking.Previous)
	cooking.POST("/:id/ingredients", h.Cooking.ToggleIngredients)
	cooking.DELETE("/:id", h.Cooking.Close)

	r.GET("/preferences", h.Preferences.Get)
	r.PUT("/preferences", h.Preferences.Update)
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
