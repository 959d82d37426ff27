package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	c := NewClient()

	r, err := c.GenerateRecipe(ctx, "guláš", shared.Czech)
	require.NoError(t, err)
	assert.Contains(t, r.Name, "guláš")

	img, err := c.GenerateImage(ctx, "x")
	require.NoError(t, err)
	assert.Contains(t, img, "data:image/jpeg;base64,")

	res, err := c.SearchRecipesOnline(ctx, "guláš", shared.Czech)
	require.NoError(t, err)
	assert.Len(t, res.Sources, 2)

	assert.Equal(t, 1, c.Calls(ai.OperationRecipe))
}

func TestClient_FailWith(t *testing.T) {
	c := NewClient()
	boom := errors.New("boom")

	c.FailWith(ai.OperationImage, boom)
	_, err := c.GenerateImage(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	c.FailWith(ai.OperationImage, nil)
	_, err = c.GenerateImage(context.Background(), "x")
	assert.NoError(t, err)
}
