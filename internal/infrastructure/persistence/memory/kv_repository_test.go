package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	_, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, "k", "v"))
	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, repo.Delete(ctx, "k"))
	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}

func TestKVRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = repo.Set(ctx, key, "v")
			_, _ = repo.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, repo.Ping(ctx))
}
