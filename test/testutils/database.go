// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	gormstore "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/gorm"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/memory"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/recipestore"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/sqlite"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// RecipesKey is the storage key used by test stores
const RecipesKey = "my-recipes"

// SetupTestKV opens an in-memory SQLite key-value store closed on cleanup
func SetupTestKV(t *testing.T) outbound.KeyValueStore {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", logger.Silent)
	require.NoError(t, err)

	kv := gormstore.NewKVRepository(db, zap.NewNop())
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// NewMemoryRecipeStore returns a recipe store over a fresh in-memory map,
// optionally pre-populated with recipes.
func NewMemoryRecipeStore(t *testing.T, recipes ...recipe.Recipe) *recipestore.Store {
	t.Helper()

	store := recipestore.New(memory.NewKVRepository(), RecipesKey, recipe.DefaultCategory(shared.Czech), zap.NewNop())
	if recipes != nil {
		require.NoError(t, store.Save(context.Background(), recipes))
	}
	return store
}
