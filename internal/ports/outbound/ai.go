package outbound

import (
	"context"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

// AIProvider is implemented by each generative AI backend. Errors carry the
// provider detail; callers classify and wrap them.
type AIProvider interface {
	Name() ai.ProviderType
	GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error)
}

// AIGateway is the application-facing AI surface. Every error it returns is
// an *errors.AppError with a single user-facing message.
type AIGateway interface {
	GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error)
	// ResolveLanguage returns lang when set, otherwise the language detected
	// from text or the configured default.
	ResolveLanguage(text string, lang shared.Language) shared.Language
}

// LanguageDetector guesses whether text is Czech or Slovak.
type LanguageDetector interface {
	Detect(text string) (shared.Language, bool)
}
