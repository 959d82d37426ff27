package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrNameRequired        = errors.New("recipe name is required")
	ErrDescriptionRequired = errors.New("recipe description is required")
	ErrRecipeNotFound      = errors.New("recipe not found")

	// ErrSchemaMismatch marks a persisted collection that parsed as JSON but
	// does not have the shape of a recipe list.
	ErrSchemaMismatch = errors.New("stored collection is not a list of recipe objects")
)
