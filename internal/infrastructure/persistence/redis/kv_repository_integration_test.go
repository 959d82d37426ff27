//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

func startRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	return redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{endpoint}})
}

func TestKVRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(startRedis(t), "test:", zap.NewNop())
	defer repo.Close()

	require.NoError(t, repo.Ping(ctx))

	_, err := repo.Get(ctx, "my-recipes")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, "my-recipes", `[{"name":"Guláš"}]`))
	got, err := repo.Get(ctx, "my-recipes")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Guláš"}]`, got)

	require.NoError(t, repo.Delete(ctx, "my-recipes"))
	_, err = repo.Get(ctx, "my-recipes")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}
