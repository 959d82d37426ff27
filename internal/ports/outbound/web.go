package outbound

import (
	"context"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/cooking"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

// ImportedPage is what a recipe page reader extracted from a URL. Either
// Recipe is set (structured data was found) or Text holds the readable
// article body for AI extraction.
type ImportedPage struct {
	URL    string
	Title  string
	Recipe *recipe.Draft
	Text   string
}

// RecipePageReader fetches and extracts a recipe web page.
type RecipePageReader interface {
	Read(ctx context.Context, url string) (*ImportedPage, error)
}

// WakeLockProvider hands out keep-awake leases. Implementations without the
// capability return cooking.NoopLease and no error.
type WakeLockProvider interface {
	Acquire(ctx context.Context, holder string) (cooking.Lease, error)
}
