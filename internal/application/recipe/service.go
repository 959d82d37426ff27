// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// DraftValidator checks a draft before it is applied
type DraftValidator interface {
	ValidateDraft(draft recipe.Draft, allowedCategories []string) error
}

// Metrics observes collection changes
type Metrics interface {
	RecipeCreated()
	RecipeDeleted()
	RecipesStored(n int)
}

// RecipeService implements the recipe use cases. Every mutation is a
// load-modify-save of the whole collection, serialized by mu.
type RecipeService struct {
	mu              sync.Mutex
	store           outbound.RecipeStore
	gateway         outbound.AIGateway
	validator       DraftValidator
	metrics         Metrics
	defaultLanguage shared.Language
	logger          *zap.Logger
}

// NewRecipeService creates a new recipe service. metrics may be nil.
func NewRecipeService(
	store outbound.RecipeStore,
	gateway outbound.AIGateway,
	validator DraftValidator,
	metrics Metrics,
	defaultLanguage shared.Language,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		store:           store,
		gateway:         gateway,
		validator:       validator,
		metrics:         metrics,
		defaultLanguage: defaultLanguage.OrDefault(),
		logger:          logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// List returns the filtered collection in stored order
func (s *RecipeService) List(ctx context.Context, query inbound.ListQuery) ([]recipe.Recipe, error) {
	return recipe.Filter(s.store.Load(ctx), query.SearchTerm, query.Category), nil
}

// Get returns one recipe by id
func (s *RecipeService) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	recipes := s.store.Load(ctx)
	idx := recipe.IndexOf(recipes, id)
	if idx < 0 {
		return nil, apperrors.NewRecipeNotFoundError(id)
	}
	r := recipes[idx].Clone()
	return &r, nil
}

// Create validates the draft and appends a new recipe
func (s *RecipeService) Create(ctx context.Context, draft recipe.Draft, lang shared.Language) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.store.Load(ctx)
	if err := s.validator.ValidateDraft(draft, allowedCategories(recipes)); err != nil {
		return nil, err
	}

	created, err := recipe.FromDraft(draft, recipe.DefaultCategory(s.language(lang)))
	if err != nil {
		return nil, draftError(err)
	}

	if err := s.save(ctx, append(recipes, created)); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecipeCreated()
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", created.ID),
		zap.String("name", created.Name),
		zap.String("category", created.Category),
	)
	return &created, nil
}

// Update replaces the editable fields of an existing recipe in place
func (s *RecipeService) Update(ctx context.Context, id string, draft recipe.Draft, lang shared.Language) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.store.Load(ctx)
	idx := recipe.IndexOf(recipes, id)
	if idx < 0 {
		return nil, apperrors.NewRecipeNotFoundError(id)
	}
	if err := s.validator.ValidateDraft(draft, allowedCategories(recipes)); err != nil {
		return nil, err
	}

	updated := recipes[idx].Clone()
	if err := updated.Apply(draft, recipe.DefaultCategory(s.language(lang))); err != nil {
		return nil, draftError(err)
	}
	recipes[idx] = updated

	if err := s.save(ctx, recipes); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", id))
	return &updated, nil
}

// Delete removes exactly the recipe with id
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, err := recipe.Remove(s.store.Load(ctx), id)
	if errors.Is(err, recipe.ErrRecipeNotFound) {
		return apperrors.NewRecipeNotFoundError(id)
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to delete recipe")
	}

	if err := s.save(ctx, remaining); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecipeDeleted()
	}

	s.logger.Info("Recipe deleted", zap.String("recipe_id", id))
	return nil
}

// Append stores an already built recipe, such as a generated or imported
// one. A missing id or category is filled in.
func (s *RecipeService) Append(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := r.Clone()
	if stored.ID == "" {
		stored.ID = recipe.NewID()
	}
	if stored.Category == "" {
		stored.Category = recipe.DefaultCategory(s.defaultLanguage)
	}

	if err := s.save(ctx, append(s.store.Load(ctx), stored)); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecipeCreated()
	}

	s.logger.Info("Recipe appended",
		zap.String("recipe_id", stored.ID),
		zap.String("name", stored.Name),
	)
	return &stored, nil
}

// SetImage replaces the image of a stored recipe
func (s *RecipeService) SetImage(ctx context.Context, id, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.store.Load(ctx)
	idx := recipe.IndexOf(recipes, id)
	if idx < 0 {
		return apperrors.NewRecipeNotFoundError(id)
	}
	recipes[idx].Image = image
	return s.save(ctx, recipes)
}

// RegenerateImage asks the gateway for a new illustration of a stored
// recipe. On failure the recipe is left unchanged.
func (s *RecipeService) RegenerateImage(ctx context.Context, id string) (*recipe.Recipe, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.gateway.GenerateImage(ctx, ai.ImagePrompt(current.Name))
	if err != nil {
		return nil, err
	}
	if err := s.SetImage(ctx, id, image); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe image regenerated", zap.String("recipe_id", id))
	current.Image = image
	return current, nil
}

// Categories returns the category table for lang
func (s *RecipeService) Categories(_ context.Context, lang shared.Language) []string {
	return recipe.Categories(s.language(lang))
}

// ReplaceAll overwrites the collection, normalizing every record
func (s *RecipeService) ReplaceAll(ctx context.Context, recipes []recipe.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := recipe.NormalizeAll(recipes, recipe.DefaultCategory(s.defaultLanguage))
	if err := s.save(ctx, normalized); err != nil {
		return err
	}
	s.logger.Info("Recipe collection replaced", zap.Int("count", len(normalized)))
	return nil
}

// Reset restores the bundled seed recipes
func (s *RecipeService) Reset(ctx context.Context) ([]recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.store.Reset(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecipesStored(len(recipes))
	}
	return recipes, nil
}

func (s *RecipeService) save(ctx context.Context, recipes []recipe.Recipe) error {
	if err := s.store.Save(ctx, recipes); err != nil {
		s.logger.Error("Failed to save recipes", zap.Error(err))
		return err
	}
	if s.metrics != nil {
		s.metrics.RecipesStored(len(recipes))
	}
	return nil
}

func (s *RecipeService) language(lang shared.Language) shared.Language {
	if lang.Valid() {
		return lang
	}
	return s.defaultLanguage
}

// allowedCategories accepts both language tables plus any category already
// present in the collection.
func allowedCategories(recipes []recipe.Recipe) []string {
	allowed := append(recipe.Categories(shared.Czech), recipe.Categories(shared.Slovak)...)
	for _, c := range recipe.CategoriesOf(recipes) {
		if !slices.Contains(allowed, c) {
			allowed = append(allowed, c)
		}
	}
	return allowed
}

func draftError(err error) error {
	switch {
	case errors.Is(err, recipe.ErrNameRequired), errors.Is(err, recipe.ErrDescriptionRequired):
		return apperrors.NewValidationError(err.Error())
	default:
		return apperrors.Wrap(err, "invalid recipe")
	}
}
