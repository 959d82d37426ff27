package recipestore

import (
	_ "embed"
	"fmt"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

//go:embed initial_recipes.json
var initialRecipes []byte

// Seed returns a fresh copy of the bundled default recipes.
func Seed() []recipe.Recipe {
	recipes, err := recipe.DecodeCollection(initialRecipes, "")
	if err != nil {
		panic(fmt.Sprintf("bundled seed recipes are invalid: %v", err))
	}
	return recipes
}
