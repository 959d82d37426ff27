// Package importer turns recipe web pages into stored recipes
package importer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

const (
	MethodStructured = "structured"
	MethodAI         = "ai"

	msgURLRequired = "Zadejte adresu stránky s receptem."
)

// DraftValidator checks an imported draft like a create form
type DraftValidator interface {
	ValidateDraft(draft recipe.Draft, allowedCategories []string) error
}

// RecipeAppender stores the imported recipe
type RecipeAppender interface {
	Append(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
}

// Metrics counts imports by extraction method and outcome
type Metrics interface {
	RecipeImported(method, status string)
}

// Service implements inbound.ImportService
type Service struct {
	reader          outbound.RecipePageReader
	gateway         outbound.AIGateway
	validator       DraftValidator
	recipes         RecipeAppender
	metrics         Metrics
	defaultLanguage shared.Language
	logger          *zap.Logger
}

// NewService creates the import service. metrics may be nil.
func NewService(
	reader outbound.RecipePageReader,
	gateway outbound.AIGateway,
	validator DraftValidator,
	recipes RecipeAppender,
	metrics Metrics,
	defaultLanguage shared.Language,
	logger *zap.Logger,
) *Service {
	return &Service{
		reader:          reader,
		gateway:         gateway,
		validator:       validator,
		recipes:         recipes,
		metrics:         metrics,
		defaultLanguage: defaultLanguage.OrDefault(),
		logger:          logger.Named("import-service"),
	}
}

var _ inbound.ImportService = (*Service)(nil)

// Import reads the page at url and appends the recipe it describes.
// Structured recipe data is used when present; otherwise the readable text
// is handed to the AI gateway for extraction.
func (s *Service) Import(ctx context.Context, url string, lang shared.Language) (*recipe.Recipe, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.NewValidationError(msgURLRequired)
	}
	if !lang.Valid() {
		lang = s.defaultLanguage
	}

	page, err := s.reader.Read(ctx, url)
	if err != nil {
		s.logger.Warn("Failed to read recipe page", zap.String("url", url), zap.Error(err))
		s.observe(MethodStructured, "failed")
		return nil, apperrors.NewImportError(url, err)
	}

	method := MethodStructured
	var draft recipe.Draft
	if page.Recipe != nil {
		draft = *page.Recipe
	} else {
		method = MethodAI
		generated, err := s.gateway.GenerateRecipe(ctx, ai.ImportPrompt(page.Title, page.Text, lang), lang)
		if err != nil {
			s.observe(method, "failed")
			return nil, err
		}
		draft = recipe.Draft{
			Name:        generated.Name,
			Description: generated.Description,
			Ingredients: generated.Ingredients,
			Steps:       generated.Steps,
		}
	}

	draft.Category = ""
	draft.SourceURL = page.URL
	if draft.SourceURL == "" {
		draft.SourceURL = url
	}
	// Structured data often omits the description.
	if strings.TrimSpace(draft.Description) == "" {
		draft.Description = strings.TrimSpace(page.Title)
	}
	if strings.TrimSpace(draft.Description) == "" {
		draft.Description = draft.Name
	}

	if err := s.validator.ValidateDraft(draft, recipe.Categories(lang)); err != nil {
		s.observe(method, "invalid")
		return nil, err
	}
	imported, err := recipe.FromDraft(draft, recipe.DefaultCategory(lang))
	if err != nil {
		s.observe(method, "invalid")
		return nil, apperrors.NewImportError(url, err)
	}

	stored, err := s.recipes.Append(ctx, imported)
	if err != nil {
		s.observe(method, "failed")
		return nil, err
	}

	s.observe(method, "success")
	s.logger.Info("Recipe imported",
		zap.String("recipe_id", stored.ID),
		zap.String("url", url),
		zap.String("method", method),
	)
	return stored, nil
}

func (s *Service) observe(method, status string) {
	if s.metrics != nil {
		s.metrics.RecipeImported(method, status)
	}
}
