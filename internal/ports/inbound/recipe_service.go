// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP handlers and the CLI drive.
package inbound

import (
	"context"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/generation"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/preferences"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

// RecipeService manages the stored recipe collection
type RecipeService interface {
	List(ctx context.Context, query ListQuery) ([]recipe.Recipe, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	Create(ctx context.Context, draft recipe.Draft, lang shared.Language) (*recipe.Recipe, error)
	Update(ctx context.Context, id string, draft recipe.Draft, lang shared.Language) (*recipe.Recipe, error)
	Delete(ctx context.Context, id string) error
	Append(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
	SetImage(ctx context.Context, id, image string) error
	RegenerateImage(ctx context.Context, id string) (*recipe.Recipe, error)
	Categories(ctx context.Context, lang shared.Language) []string
	ReplaceAll(ctx context.Context, recipes []recipe.Recipe) error
	Reset(ctx context.Context) ([]recipe.Recipe, error)
}

// ListQuery filters the collection view
type ListQuery struct {
	SearchTerm string
	Category   string
}

// GenerationService drives the per-client generator flow
type GenerationService interface {
	Submit(ctx context.Context, clientID, prompt string, lang shared.Language) (generation.Snapshot, error)
	Current(clientID string) generation.Snapshot
	Save(ctx context.Context, clientID string) (*recipe.Recipe, error)
	Subscribe(clientID string) (<-chan generation.Snapshot, func())
}

// SearchService runs grounded web searches
type SearchService interface {
	Search(ctx context.Context, query string, lang shared.Language) (search.Outcome, error)
}

// CookingService manages cooking-mode sessions
type CookingService interface {
	Start(ctx context.Context, clientID, recipeID string) (CookingView, error)
	Get(sessionID string) (CookingView, error)
	Next(sessionID string) (CookingView, error)
	Previous(sessionID string) (CookingView, error)
	ToggleIngredients(sessionID string) (CookingView, error)
	Close(sessionID string) error
}

// CookingView is the rendered state of a cooking session
type CookingView struct {
	SessionID       string   `json:"sessionId"`
	RecipeID        string   `json:"recipeId"`
	RecipeName      string   `json:"recipeName"`
	CurrentStep     int      `json:"currentStep"`
	TotalSteps      int      `json:"totalSteps"`
	Step            string   `json:"step"`
	Position        string   `json:"position"`
	IsFirst         bool     `json:"isFirst"`
	IsLast          bool     `json:"isLast"`
	ShowIngredients bool     `json:"showIngredients"`
	Ingredients     []string `json:"ingredients,omitempty"`
	WakeLockHeld    bool     `json:"wakeLockHeld"`
}

// PreferencesService loads and stores the application state
type PreferencesService interface {
	Get(ctx context.Context) preferences.State
	Update(ctx context.Context, patch preferences.Patch) (preferences.State, error)
}

// ImportService turns a recipe web page into a stored recipe
type ImportService interface {
	Import(ctx context.Context, url string, lang shared.Language) (*recipe.Recipe, error)
}
