package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

func TestParseGeneratedRecipe(t *testing.T) {
	t.Run("valid payload with whitespace", func(t *testing.T) {
		got, err := ParseGeneratedRecipe("\n  {\"name\":\"Test\",\"description\":\"Desc\",\"ingredients\":[\"a\",\"b\"],\"steps\":[\"s1\",\"s2\"]}  \n")

		require.NoError(t, err)
		assert.Equal(t, "Test", got.Name)
		assert.Equal(t, []string{"a", "b"}, got.Ingredients)
		assert.Equal(t, []string{"s1", "s2"}, got.Steps)
	})

	t.Run("fenced payload", func(t *testing.T) {
		got, err := ParseGeneratedRecipe("```json\n{\"name\":\"A\",\"description\":\"B\",\"ingredients\":[],\"steps\":[]}\n```")

		require.NoError(t, err)
		assert.Equal(t, "A", got.Name)
		assert.NotNil(t, got.Ingredients)
	})

	shapeErrors := map[string]string{
		"empty name":          `{"name":"","description":"d","ingredients":[],"steps":[]}`,
		"missing description": `{"name":"n","ingredients":[],"steps":[]}`,
		"steps not array":     `{"name":"n","description":"d","ingredients":[],"steps":"one"}`,
		"name not string":     `{"name":5,"description":"d","ingredients":[],"steps":[]}`,
	}
	for name, payload := range shapeErrors {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGeneratedRecipe(payload)
			assert.ErrorIs(t, err, ErrBadRecipeShape)
		})
	}

	t.Run("not json", func(t *testing.T) {
		_, err := ParseGeneratedRecipe("Here is your recipe!")
		assert.ErrorIs(t, err, ErrMalformedResponse)
		assert.NotErrorIs(t, err, ErrBadRecipeShape)
	})
}

func TestToRecipe(t *testing.T) {
	g := GeneratedRecipe{Name: "Test", Description: "Desc", Ingredients: []string{"a"}, Steps: []string{"s"}}

	r := g.ToRecipe("Ostatní")

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Ostatní", r.Category)
	assert.Empty(t, r.Image)
	assert.Equal(t, g.Ingredients, r.Ingredients)
}

func TestPrompts(t *testing.T) {
	assert.Contains(t, SystemInstruction(shared.Czech), "v českém jazyce")
	assert.Contains(t, SystemInstruction(shared.Slovak), "v slovenskom jazyku")
	assert.Contains(t, SearchPrompt("svíčková", shared.Czech), "'svíčková'")
	assert.Contains(t, SearchPrompt("bryndzové halušky", shared.Slovak), "slovenské weby")
	assert.Equal(t,
		`Professional food photography of "Guláš". Delicious and appealing, cinematic lighting, high detail, served on a beautiful plate.`,
		ImagePrompt("Guláš"))
	assert.Equal(t, "data:image/jpeg;base64,QUJD", DataURI("QUJD"))
}
