// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a string-keyed store of string values. One key holds the
// whole recipe collection; preferences use a few more.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// RecipeStore persists the recipe collection as a single blob.
type RecipeStore interface {
	// Load never fails: unreadable or corrupt data yields the bundled seed set.
	Load(ctx context.Context) []recipe.Recipe
	// Save overwrites the persisted collection. Last writer wins.
	Save(ctx context.Context, recipes []recipe.Recipe) error
	// Reset replaces the persisted collection with the bundled seed set.
	Reset(ctx context.Context) ([]recipe.Recipe, error)
}
