// Package ai defines the values exchanged with generative AI providers and the
// language-specific prompt texts sent to them.
package ai

import (
	"errors"
	"strings"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

// ProviderType represents different AI providers
type ProviderType string

const (
	ProviderTypeGemini ProviderType = "gemini"
	ProviderTypeOpenAI ProviderType = "openai"
	ProviderTypeMock   ProviderType = "mock"
)

// Operation names an AI gateway call for logging and metrics.
type Operation string

const (
	OperationRecipe Operation = "generate_recipe"
	OperationImage  Operation = "generate_image"
	OperationSearch Operation = "search_recipes"
)

// ImageAspectRatio and ImageMimeType are fixed for every generated image.
const (
	ImageAspectRatio = "4:3"
	ImageMimeType    = "image/jpeg"
)

// ErrMalformedResponse wraps provider payloads that could not be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// ErrBadRecipeShape is returned when a provider answer lacks a required field.
var ErrBadRecipeShape = errors.New("Odpověď z API nemá správný formát receptu.")

// ErrNoImage is returned when an image call succeeded with zero images.
var ErrNoImage = errors.New("API nevrátilo žádný obrázek.")

// GeneratedRecipe is the text stage result. It has no category or image yet.
type GeneratedRecipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// rawGeneratedRecipe mirrors the provider payload loosely for validation.
type rawGeneratedRecipe struct {
	Name        any `json:"name"`
	Description any `json:"description"`
	Ingredients any `json:"ingredients"`
	Steps       any `json:"steps"`
}

// ToRecipe turns the generated text into a collection entry with a fresh id,
// the given category and no image.
func (g GeneratedRecipe) ToRecipe(category string) recipe.Recipe {
	r := recipe.Recipe{
		ID:          recipe.NewID(),
		Name:        g.Name,
		Description: g.Description,
		Ingredients: append([]string{}, g.Ingredients...),
		Steps:       append([]string{}, g.Steps...),
		Category:    category,
	}
	return r
}

// ImagePrompt is the photography prompt used for a recipe illustration.
func ImagePrompt(recipeName string) string {
	return `Professional food photography of "` + recipeName + `". Delicious and appealing, cinematic lighting, high detail, served on a beautiful plate.`
}

// DataURI wraps a base64 JPEG payload for direct use as an image source.
func DataURI(base64Payload string) string {
	return "data:" + ImageMimeType + ";base64," + strings.TrimSpace(base64Payload)
}
