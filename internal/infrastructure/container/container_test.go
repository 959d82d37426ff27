package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	apprecipe "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/memory"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/recipestore"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/wakelock"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

func useMemoryBackends(t *testing.T) {
	t.Setenv("KUCHARKA_STORAGE_DRIVER", "memory")
	t.Setenv("KUCHARKA_AI_PROVIDER", "mock")
}

func TestModule_GraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(fx.NopLogger, Module("")))
}

func TestCoreAndServices_Build(t *testing.T) {
	useMemoryBackends(t)

	var (
		recipes   *apprecipe.RecipeService
		wakeLocks outbound.WakeLockProvider
	)
	app := fxtest.New(t, fx.NopLogger, CoreModule(""), ServiceModule, fx.Populate(&recipes, &wakeLocks))
	app.RequireStart()
	defer app.RequireStop()

	list, err := recipes.List(context.Background(), inbound.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, len(recipestore.Seed()))
	assert.IsType(t, &wakelock.Registry{}, wakeLocks)
}

func TestWakeLocksDisabled(t *testing.T) {
	useMemoryBackends(t)
	t.Setenv("KUCHARKA_COOKING_WAKE_LOCK", "false")

	var wakeLocks outbound.WakeLockProvider
	app := fxtest.New(t, fx.NopLogger, CoreModule(""), ServiceModule, fx.Populate(&wakeLocks))
	app.RequireStart()
	defer app.RequireStop()

	assert.IsType(t, wakelock.Disabled{}, wakeLocks)
}

func TestSeedIfAbsent(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVRepository()
	store := recipestore.New(kv, "my-recipes", "Ostatní", zap.NewNop())

	require.NoError(t, seedIfAbsent(ctx, store, zap.NewNop()))
	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Save(ctx, nil))
	require.NoError(t, seedIfAbsent(ctx, store, zap.NewNop()))
	assert.Empty(t, store.Load(ctx), "an emptied collection is not reseeded")
}
