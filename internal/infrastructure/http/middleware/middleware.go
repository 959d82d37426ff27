// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

const (
	// ClientIDHeader identifies the browser tab driving a generation flow or
	// a cooking session.
	ClientIDHeader  = "X-Client-ID"
	DefaultClientID = "default"

	requestIDKey = "request_id"
	clientIDKey  = "client_id"
)

// Middleware provides all middleware functions
type Middleware struct {
	config *config.Config
	logger *zap.Logger
	tracer trace.Tracer

	mu       sync.Mutex
	enabled  bool
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger) *Middleware {
	m := &Middleware{
		config:   cfg,
		logger:   logger.Named("http"),
		tracer:   otel.Tracer("kucharka/http"),
		limiters: make(map[string]*rate.Limiter),
	}
	m.SetRateLimit(cfg.RateLimit)
	return m
}

// SetRateLimit changes the per-client limit of AI-backed requests. Existing
// limiters are adjusted in place.
func (m *Middleware) SetRateLimit(cfg config.RateLimitConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = cfg.Enable
	m.limit = rate.Limit(float64(cfg.RequestsPerMin) / 60)
	m.burst = max(cfg.BurstSize, 1)
	for _, l := range m.limiters {
		l.SetLimit(m.limit)
		l.SetBurst(m.burst)
	}
}

// RequestID adds a unique request ID to the context
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// ClientID resolves the client identifier from the X-Client-ID header.
// Browsers cannot set headers on websocket upgrades, so the client query
// parameter is accepted too.
func (m *Middleware) ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if clientID == "" {
			clientID = strings.TrimSpace(c.Query("client"))
		}
		if clientID == "" {
			clientID = DefaultClientID
		}
		c.Set(clientIDKey, clientID)
		c.Next()
	}
}

// Logger provides structured logging for requests
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		// Skip logging for health checks
		if strings.HasPrefix(path, m.config.Monitoring.HealthCheckPath) {
			return
		}

		statusCode := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("client_id", GetClientID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", statusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()
		switch {
		case statusCode >= 500:
			m.logger.Error("Server error", append(fields, zap.String("error", errorMessage))...)
		case statusCode >= 400:
			m.logger.Warn("Client error", append(fields, zap.String("error", errorMessage))...)
		default:
			m.logger.Info("Request completed", fields...)
		}
	}
}

// Recovery recovers from panics and returns 500 error
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("Panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apperrors.ToErrorResponse(apperrors.NewInternalError(""), GetRequestID(c)))
			}
		}()

		c.Next()
	}
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Server.EnableCORS {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		if origin != "" && m.isOriginAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-Client-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimit limits AI-backed requests per client
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := m.limiter(GetClientID(c) + "|" + c.ClientIP())
		if limiter != nil && !limiter.Allow() {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apperrors.ToErrorResponse(apperrors.NewTooManyRequestsError(), GetRequestID(c)))
			return
		}

		c.Next()
	}
}

// Tracing adds distributed tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Monitoring.EnableTracing {
			c.Next()
			return
		}

		ctx, span := m.tracer.Start(
			c.Request.Context(),
			fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.url", c.Request.URL.String()),
				attribute.String("http.user_agent", c.Request.UserAgent()),
				attribute.String("request.id", GetRequestID(c)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetAttributes(
			attribute.Int("http.status_code", c.Writer.Status()),
			attribute.Int("http.response_size", c.Writer.Size()),
		)
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last())
		}
	}
}

// Security adds security headers
func (m *Middleware) Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if m.config.IsProduction() {
			c.Header("Content-Security-Policy",
				"default-src 'self'; "+
					"style-src 'self' 'unsafe-inline'; "+
					"img-src 'self' data: https:; "+
					"connect-src 'self';")
		}

		c.Next()
	}
}

// MaxBody caps the request body size. Generated images travel as data URIs,
// so the limit is set well above a typical JSON payload.
func (m *Middleware) MaxBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit := m.config.Server.MaxBodyBytes; limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GetClientID returns the client id set by ClientID
func GetClientID(c *gin.Context) string {
	if id := c.GetString(clientIDKey); id != "" {
		return id
	}
	return DefaultClientID
}

// limiter returns nil while rate limiting is disabled
func (m *Middleware) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return nil
	}
	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(m.limit, m.burst)
		m.limiters[key] = l
	}
	return l
}

// isOriginAllowed checks if origin is in allowed list
func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.config.IsDevelopment() {
		return true
	}

	for _, allowed := range m.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}
