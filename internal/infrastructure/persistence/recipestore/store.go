// Package recipestore persists the recipe collection as one JSON blob in a
// key-value store and falls back to the bundled seed set when the blob is
// missing or unreadable.
package recipestore

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// FallbackReason labels why Load returned the seed set.
type FallbackReason string

const (
	FallbackMissing    FallbackReason = "missing"
	FallbackUnreadable FallbackReason = "unreadable"
	FallbackCorrupt    FallbackReason = "corrupt"
)

// Store implements outbound.RecipeStore.
type Store struct {
	kv              outbound.KeyValueStore
	key             string
	defaultCategory string
	logger          *zap.Logger
	onFallback      func(FallbackReason)
}

// Option configures a Store.
type Option func(*Store)

// WithFallbackHook is called every time Load falls back to the seed set.
func WithFallbackHook(fn func(FallbackReason)) Option {
	return func(s *Store) { s.onFallback = fn }
}

// New returns a store keeping the collection under key. defaultCategory is
// applied to records stored without one.
func New(kv outbound.KeyValueStore, key, defaultCategory string, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		kv:              kv,
		key:             key,
		defaultCategory: defaultCategory,
		logger:          logger.Named("recipe-store"),
		onFallback:      func(FallbackReason) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the normalized collection. It never fails and never returns nil.
func (s *Store) Load(ctx context.Context) []recipe.Recipe {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, outbound.ErrKeyNotFound) {
		s.onFallback(FallbackMissing)
		return s.seed()
	}
	if err != nil {
		s.logger.Warn("falling back to seed recipes",
			zap.Error(apperrors.NewStorageReadError(s.key, err)))
		s.onFallback(FallbackUnreadable)
		return s.seed()
	}

	recipes, err := recipe.DecodeCollection([]byte(raw), s.defaultCategory)
	if err != nil {
		s.logger.Warn("falling back to seed recipes",
			zap.Error(apperrors.NewStorageReadError(s.key, err)))
		s.onFallback(FallbackCorrupt)
		return s.seed()
	}
	return recipes
}

// Save overwrites the stored collection.
func (s *Store) Save(ctx context.Context, recipes []recipe.Recipe) error {
	data, err := recipe.EncodeCollection(recipes)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recipes").WithCause(err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return apperrors.NewDatabaseError("save recipes", err)
	}
	s.logger.Debug("recipes saved", zap.Int("count", len(recipes)))
	return nil
}

// Reset overwrites the stored collection with the seed set.
func (s *Store) Reset(ctx context.Context) ([]recipe.Recipe, error) {
	seed := s.seed()
	if err := s.Save(ctx, seed); err != nil {
		return nil, err
	}
	s.logger.Info("recipes reset to seed", zap.Int("count", len(seed)))
	return seed, nil
}

// Exists reports whether a collection has ever been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, outbound.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) seed() []recipe.Recipe {
	return recipe.NormalizeAll(Seed(), s.defaultCategory)
}
