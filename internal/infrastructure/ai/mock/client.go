// Package mock provides a deterministic offline AI provider for development
// and tests.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

// placeholderJPEG is a 1x1 white JPEG.
const placeholderJPEG = "/9j/4AAQSkZJRgABAQEASABIAAD/2wBDAP//////////////////////////////////////////////////////////////////////////////////////wgALCAABAAEBAREA/8QAFBABAAAAAAAAAAAAAAAAAAAAAP/aAAgBAQABPxA="

// Client answers every call locally. Failures can be injected per operation.
type Client struct {
	mu       sync.Mutex
	failures map[ai.Operation]error
	calls    map[ai.Operation]int
}

// NewClient creates a mock provider
func NewClient() *Client {
	return &Client{failures: map[ai.Operation]error{}, calls: map[ai.Operation]int{}}
}

// Name identifies the provider
func (c *Client) Name() ai.ProviderType { return ai.ProviderTypeMock }

// FailWith makes op return err until cleared with a nil err.
func (c *Client) FailWith(op ai.Operation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, op)
		return
	}
	c.failures[op] = err
}

// Calls reports how many times op was invoked.
func (c *Client) Calls(op ai.Operation) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *Client) record(op ai.Operation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	return c.failures[op]
}

// GenerateRecipe builds a recipe around the prompt text
func (c *Client) GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error) {
	if err := c.record(ai.OperationRecipe); err != nil {
		return ai.GeneratedRecipe{}, err
	}
	if err := ctx.Err(); err != nil {
		return ai.GeneratedRecipe{}, err
	}

	subject := strings.TrimSpace(prompt)
	if lang.OrDefault() == shared.Slovak {
		return ai.GeneratedRecipe{
			Name:        fmt.Sprintf("Rýchly recept: %s", subject),
			Description: "Jednoduché jedlo pripravené za pár minút.",
			Ingredients: []string{"2 lyžice oleja", "1 cibuľa", "soľ, korenie"},
			Steps:       []string{"Nakrájajte cibuľu.", "Opražte ju na oleji.", "Dochuťte a podávajte."},
		}, nil
	}
	return ai.GeneratedRecipe{
		Name:        fmt.Sprintf("Rychlý recept: %s", subject),
		Description: "Jednoduché jídlo připravené za pár minut.",
		Ingredients: []string{"2 lžíce oleje", "1 cibule", "sůl, pepř"},
		Steps:       []string{"Nakrájejte cibuli.", "Osmahněte ji na oleji.", "Dochuťte a podávejte."},
	}, nil
}

// GenerateImage returns a tiny placeholder JPEG
func (c *Client) GenerateImage(ctx context.Context, _ string) (string, error) {
	if err := c.record(ai.OperationImage); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return ai.DataURI(placeholderJPEG), nil
}

// SearchRecipesOnline returns a canned summary with two sources
func (c *Client) SearchRecipesOnline(ctx context.Context, query string, _ shared.Language) (search.Result, error) {
	if err := c.record(ai.OperationSearch); err != nil {
		return search.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return search.Result{}, err
	}
	return search.NewResult(
		fmt.Sprintf("Na webu je mnoho variant receptu „%s“.", query),
		[]search.Citation{
			{Title: "Recepty.cz", URI: "https://www.recepty.cz/"},
			{Title: "Toprecepty.cz", URI: "https://www.toprecepty.cz/"},
		},
	), nil
}
