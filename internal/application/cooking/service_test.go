package cooking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/wakelock"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/test/testutils"
)

type recipes map[string]recipe.Recipe

func (r recipes) Get(_ context.Context, id string) (*recipe.Recipe, error) {
	found, ok := r[id]
	if !ok {
		return nil, apperrors.NewRecipeNotFoundError(id)
	}
	return &found, nil
}

type gauge struct{ last int }

func (g *gauge) CookingSessions(n int) { g.last = n }

func testRecipes() recipes {
	return recipes{
		"r1": testutils.NewRecipeBuilder().WithID("r1").WithName("Svíčková").
			WithIngredients("hovězí", "smetana").WithSteps("Nakrájet.", "Péct.", "Podávat.").Build(),
		"empty": testutils.NewRecipeBuilder().WithID("empty").WithSteps().Build(),
	}
}

func leaseProvider(leases ...*testutils.CountingLease) *testutils.MockWakeLockProvider {
	provider := &testutils.MockWakeLockProvider{}
	for _, l := range leases {
		provider.On("Acquire", mock.Anything, mock.Anything).Return(l, nil).Once()
	}
	return provider
}

func TestStart_NavigatesAndReleasesOnClose(t *testing.T) {
	lease := &testutils.CountingLease{}
	metrics := &gauge{}
	svc := NewService(testRecipes(), leaseProvider(lease), metrics, Config{}, zap.NewNop())

	view, err := svc.Start(context.Background(), "client-1", "r1")
	require.NoError(t, err)
	assert.Equal(t, "Nakrájet.", view.Step)
	assert.Equal(t, "1 / 3", view.Position)
	assert.True(t, view.IsFirst)
	assert.True(t, view.WakeLockHeld)
	assert.Equal(t, 1, metrics.last)

	view, err = svc.Previous(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.CurrentStep)

	svc.Next(view.SessionID)
	view, err = svc.Next(view.SessionID)
	require.NoError(t, err)
	assert.True(t, view.IsLast)
	view, _ = svc.Next(view.SessionID)
	assert.Equal(t, "3 / 3", view.Position)

	require.NoError(t, svc.Close(view.SessionID))
	assert.Equal(t, 1, lease.Releases)
	assert.Equal(t, 0, metrics.last)

	_, err = svc.Get(view.SessionID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	assert.True(t, apperrors.Is(svc.Close(view.SessionID), apperrors.CodeNotFound))
	assert.Equal(t, 1, lease.Releases)
}

func TestStart_UnknownRecipe(t *testing.T) {
	provider := &testutils.MockWakeLockProvider{}
	svc := NewService(testRecipes(), provider, nil, Config{}, zap.NewNop())

	_, err := svc.Start(context.Background(), "c", "missing")

	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
	provider.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
}

func TestStart_ReplacesClientSession(t *testing.T) {
	first, second := &testutils.CountingLease{}, &testutils.CountingLease{}
	svc := NewService(testRecipes(), leaseProvider(first, second), nil, Config{}, zap.NewNop())

	a, err := svc.Start(context.Background(), "client", "r1")
	require.NoError(t, err)
	b, err := svc.Start(context.Background(), "client", "r1")
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, 1, first.Releases)
	assert.Equal(t, 0, second.Releases)
	assert.Equal(t, 1, svc.Active())
}

func TestStart_WithoutWakeLockCapability(t *testing.T) {
	provider := &testutils.MockWakeLockProvider{}
	provider.On("Acquire", mock.Anything, mock.Anything).Return(nil, errors.New("unsupported"))
	svc := NewService(testRecipes(), provider, nil, Config{}, zap.NewNop())

	view, err := svc.Start(context.Background(), "c", "r1")
	require.NoError(t, err)
	assert.False(t, view.WakeLockHeld)

	view, err = svc.Start(context.Background(), "d", "r1")
	require.NoError(t, err)
	assert.False(t, view.WakeLockHeld)
	assert.NoError(t, svc.Close(view.SessionID))
}

func TestStart_DisabledProvider(t *testing.T) {
	svc := NewService(testRecipes(), wakelock.Disabled{}, nil, Config{}, zap.NewNop())

	view, err := svc.Start(context.Background(), "c", "r1")
	require.NoError(t, err)
	assert.False(t, view.WakeLockHeld)
}

func TestStart_ZeroSteps(t *testing.T) {
	svc := NewService(testRecipes(), wakelock.Disabled{}, nil, Config{}, zap.NewNop())

	view, err := svc.Start(context.Background(), "c", "empty")
	require.NoError(t, err)
	assert.Equal(t, "0 / 0", view.Position)

	view, err = svc.Next(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.CurrentStep)
	assert.True(t, view.IsFirst)
	assert.True(t, view.IsLast)
}

func TestToggleIngredients(t *testing.T) {
	svc := NewService(testRecipes(), wakelock.Disabled{}, nil, Config{}, zap.NewNop())
	view, err := svc.Start(context.Background(), "c", "r1")
	require.NoError(t, err)
	assert.Empty(t, view.Ingredients)

	view, err = svc.ToggleIngredients(view.SessionID)
	require.NoError(t, err)
	assert.True(t, view.ShowIngredients)
	assert.Equal(t, []string{"hovězí", "smetana"}, view.Ingredients)

	view, _ = svc.ToggleIngredients(view.SessionID)
	assert.False(t, view.ShowIngredients)
	assert.Empty(t, view.Ingredients)
}

func TestReap_ReleasesIdleSessions(t *testing.T) {
	stale, fresh := &testutils.CountingLease{}, &testutils.CountingLease{}
	svc := NewService(testRecipes(), leaseProvider(stale, fresh), nil, Config{IdleTimeout: time.Minute}, zap.NewNop())

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.Start(context.Background(), "a", "r1")
	require.NoError(t, err)
	clock = clock.Add(50 * time.Second)
	_, err = svc.Start(context.Background(), "b", "r1")
	require.NoError(t, err)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, 1, svc.Reap())
	assert.Equal(t, 1, stale.Releases)
	assert.Equal(t, 0, fresh.Releases)
	assert.Equal(t, 1, svc.Active())
}

func TestShutdown_ReleasesEverything(t *testing.T) {
	logger := zap.NewNop()
	registry := wakelock.NewRegistry(nil, logger)
	svc := NewService(testRecipes(), registry, nil, Config{IdleTimeout: time.Hour, ReapInterval: time.Millisecond}, logger)
	svc.StartReaper()

	for _, client := range []string{"a", "b", "c"} {
		_, err := svc.Start(context.Background(), client, "r1")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, registry.Count())

	require.NoError(t, svc.Shutdown(context.Background()))
	assert.Equal(t, 0, registry.Count())
	assert.Equal(t, 0, svc.Active())
	assert.NoError(t, svc.Shutdown(context.Background()))
}

func TestStart_AfterShutdownReleasesLease(t *testing.T) {
	lease := &testutils.CountingLease{}
	svc := NewService(testRecipes(), leaseProvider(lease), nil, Config{}, zap.NewNop())
	require.NoError(t, svc.Shutdown(context.Background()))

	_, err := svc.Start(context.Background(), "a", "r1")

	assert.True(t, apperrors.Is(err, apperrors.CodeServiceUnavailable))
	assert.Equal(t, 1, lease.Releases)
	assert.Equal(t, 0, svc.Active())
}
