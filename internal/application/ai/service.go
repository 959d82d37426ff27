// Package ai provides the application layer for AI operations. It wraps the
// configured provider with language resolution, timeouts, metrics, tracing
// and the translation of provider failures into user-facing messages.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// Metrics receives one observation per provider call
type Metrics interface {
	AIRequest(provider, operation, status string, duration time.Duration)
}

// Gateway implements outbound.AIGateway on top of a provider
type Gateway struct {
	provider        outbound.AIProvider
	detector        outbound.LanguageDetector
	metrics         Metrics
	tracer          trace.Tracer
	defaultLanguage shared.Language
	timeout         time.Duration
	imageTimeout    time.Duration
	logger          *zap.Logger
}

// Option configures a Gateway
type Option func(*Gateway)

// WithLanguageDetector guesses the language of prompts submitted without one
func WithLanguageDetector(d outbound.LanguageDetector) Option {
	return func(g *Gateway) { g.detector = d }
}

func WithMetrics(m Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(g *Gateway) { g.tracer = t }
}

// WithDefaultLanguage sets the language used when none is given or detected
func WithDefaultLanguage(lang shared.Language) Option {
	return func(g *Gateway) { g.defaultLanguage = lang.OrDefault() }
}

// WithTimeouts bounds text calls and image calls. Zero means no bound.
func WithTimeouts(text, image time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = text
		g.imageTimeout = image
	}
}

// NewGateway creates a new AI gateway
func NewGateway(provider outbound.AIProvider, logger *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		provider:        provider,
		tracer:          otel.Tracer("kucharka/ai"),
		defaultLanguage: shared.DefaultLanguage,
		logger:          logger.Named("ai-gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.logger.Info("AI gateway initialized",
		zap.String("provider", string(provider.Name())),
		zap.Bool("language_detection", g.detector != nil),
	)
	return g
}

// GenerateRecipe asks the provider for a recipe matching prompt
func (g *Gateway) GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error) {
	lang = g.ResolveLanguage(prompt, lang)

	ctx, finish := g.begin(ctx, ai.OperationRecipe, g.timeout, attribute.String("ai.language", string(lang)))
	recipe, err := g.provider.GenerateRecipe(ctx, prompt, lang)
	finish(err)
	if err != nil {
		return ai.GeneratedRecipe{}, g.classify(ai.OperationRecipe, ai.RecipeFailurePrefix, err)
	}

	g.logger.Info("Recipe generated",
		zap.String("name", recipe.Name),
		zap.String("language", string(lang)),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("steps", len(recipe.Steps)),
	)
	return recipe, nil
}

// GenerateImage returns a JPEG data URI for prompt
func (g *Gateway) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, finish := g.begin(ctx, ai.OperationImage, g.imageTimeout)
	uri, err := g.provider.GenerateImage(ctx, prompt)
	if err == nil && uri == "" {
		err = ai.ErrNoImage
	}
	finish(err)
	if err != nil {
		return "", g.classify(ai.OperationImage, ai.ImageFailurePrefix, err)
	}
	return uri, nil
}

// SearchRecipesOnline runs a grounded web search
func (g *Gateway) SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error) {
	lang = g.ResolveLanguage(query, lang)

	ctx, finish := g.begin(ctx, ai.OperationSearch, g.timeout, attribute.String("ai.language", string(lang)))
	result, err := g.provider.SearchRecipesOnline(ctx, query, lang)
	finish(err)
	if err != nil {
		return search.Result{}, g.classify(ai.OperationSearch, ai.SearchFailurePrefix, err)
	}

	result.Summary = strings.TrimSpace(result.Summary)
	if result.Sources == nil {
		result.Sources = []search.Source{}
	}
	return result, nil
}

// ResolveLanguage picks the explicit language, then a detected one, then the
// configured default.
func (g *Gateway) ResolveLanguage(text string, lang shared.Language) shared.Language {
	if lang.Valid() {
		return lang
	}
	if g.detector != nil {
		if detected, ok := g.detector.Detect(text); ok {
			return detected
		}
	}
	return g.defaultLanguage
}

// begin starts the span, timeout and timer for one call. The returned
// function must be called exactly once with the call's error.
func (g *Gateway) begin(ctx context.Context, op ai.Operation, timeout time.Duration, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	provider := string(g.provider.Name())
	ctx, span := g.tracer.Start(ctx, fmt.Sprintf("ai.%s", op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs,
			attribute.String("ai.provider", provider),
			attribute.String("ai.operation", string(op)),
		)...),
	)

	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	start := time.Now()
	return ctx, func(err error) {
		defer span.End()
		defer cancel()

		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if g.metrics != nil {
			g.metrics.AIRequest(provider, string(op), status, time.Since(start))
		}
	}
}

// classify keeps the failure kind as the error code and builds the single
// message shown to the user.
func (g *Gateway) classify(op ai.Operation, prefix string, err error) error {
	message := fmt.Sprintf("%s: %s", prefix, detail(err))

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, ai.ErrNoImage):
		appErr = apperrors.NewNoImageReturned(message).WithCause(err)
	case errors.Is(err, ai.ErrBadRecipeShape), errors.Is(err, ai.ErrMalformedResponse):
		appErr = apperrors.NewMalformedResponse(message, err)
	default:
		appErr = apperrors.NewTransportFailure(message, err)
	}

	g.logger.Error("AI request failed",
		zap.String("operation", string(op)),
		zap.String("provider", string(g.provider.Name())),
		zap.String("code", string(appErr.Code)),
		zap.Error(err),
	)
	return appErr
}

func detail(err error) string {
	switch {
	case errors.Is(err, ai.ErrBadRecipeShape):
		return ai.ErrBadRecipeShape.Error()
	case errors.Is(err, ai.ErrNoImage):
		return ai.ErrNoImage.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "vypršel časový limit požadavku"
	default:
		return err.Error()
	}
}
