package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseGeneratedRecipe trims and decodes a provider answer. Name and
// description must be non-empty strings, ingredients and steps must be
// arrays. Non-string array entries are dropped.
func ParseGeneratedRecipe(text string) (GeneratedRecipe, error) {
	text = strings.TrimSpace(text)
	text = stripCodeFence(text)

	var raw rawGeneratedRecipe
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return GeneratedRecipe{}, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}

	name, _ := raw.Name.(string)
	description, _ := raw.Description.(string)
	ingredients, okIngredients := raw.Ingredients.([]any)
	steps, okSteps := raw.Steps.([]any)

	if name == "" || description == "" || !okIngredients || !okSteps {
		return GeneratedRecipe{}, ErrBadRecipeShape
	}

	return GeneratedRecipe{
		Name:        name,
		Description: description,
		Ingredients: stringItems(ingredients),
		Steps:       stringItems(steps),
	}, nil
}

func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stripCodeFence removes a ```json fence some models add despite being asked
// for raw JSON.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
