// Package ai wires the configured AI provider and exposes its health check.
package ai

import (
	"fmt"

	"go.uber.org/zap"

	domain "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/gemini"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/mock"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/openai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/transport"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// NewProvider builds the provider named by ai.provider. The HTTP client
// timeout covers the slower image calls; text calls are bounded by the
// gateway's per-call context.
func NewProvider(cfg *config.Config, logger *zap.Logger) (outbound.AIProvider, error) {
	timeout := max(cfg.AI.Timeout, cfg.AI.ImageTimeout)

	switch domain.ProviderType(cfg.AI.Provider) {
	case domain.ProviderTypeGemini:
		if cfg.AI.GeminiKey == "" {
			logger.Warn("Gemini API key not configured; provider calls will fail")
		}
		return gemini.NewClient(gemini.Config{
			APIKey:      cfg.AI.GeminiKey,
			BaseURL:     cfg.AI.GeminiBaseURL,
			TextModel:   cfg.AI.TextModel,
			ImageModel:  cfg.AI.ImageModel,
			SearchModel: cfg.AI.SearchModel,
		}, transport.NewHTTPClient(timeout), logger), nil
	case domain.ProviderTypeOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:      cfg.AI.OpenAIKey,
			BaseURL:     cfg.AI.OpenAIBaseURL,
			Model:       cfg.AI.OpenAIModel,
			ImageModel:  cfg.AI.OpenAIImage,
			SearchModel: cfg.AI.OpenAISearch,
		}, transport.NewHTTPClient(timeout), logger), nil
	case domain.ProviderTypeMock:
		logger.Info("using mock AI provider")
		return mock.NewClient(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
