// Package search provides the web search use case
package search

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// Service implements inbound.SearchService
type Service struct {
	gateway         outbound.AIGateway
	defaultLanguage shared.Language
	logger          *zap.Logger
}

// NewService creates a new search service
func NewService(gateway outbound.AIGateway, defaultLanguage shared.Language, logger *zap.Logger) *Service {
	return &Service{
		gateway:         gateway,
		defaultLanguage: defaultLanguage.OrDefault(),
		logger:          logger.Named("search-service"),
	}
}

var _ inbound.SearchService = (*Service)(nil)

// Search runs one grounded search. The outcome is always renderable: a
// blank query leaves it idle and a failure puts the message in it.
func (s *Service) Search(ctx context.Context, query string, lang shared.Language) (search.Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		message := ai.PromptRequiredMessage(s.language(lang))
		outcome := search.Idle()
		outcome.Error = message
		return outcome, apperrors.NewValidationError(message)
	}

	outcome := search.Searching(query)
	result, err := s.gateway.SearchRecipesOnline(ctx, query, lang)
	if err != nil {
		message := err.Error()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}
		return outcome.Failed(message), err
	}

	s.logger.Info("Search completed",
		zap.String("query", query),
		zap.Int("sources", len(result.Sources)),
	)
	return outcome.Succeeded(result), nil
}

func (s *Service) language(lang shared.Language) shared.Language {
	if lang.Valid() {
		return lang
	}
	return s.defaultLanguage
}
