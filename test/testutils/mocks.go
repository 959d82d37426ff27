// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/cooking"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// MockAIGateway provides a mock implementation of outbound.AIGateway
type MockAIGateway struct {
	mock.Mock
	// Language is reported as the detected language for unset languages
	Language shared.Language
}

var _ outbound.AIGateway = (*MockAIGateway)(nil)

// GenerateRecipe mocks the text stage
func (m *MockAIGateway) GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error) {
	args := m.Called(ctx, prompt, lang)
	r, _ := args.Get(0).(ai.GeneratedRecipe)
	return r, args.Error(1)
}

// GenerateImage mocks the image stage
func (m *MockAIGateway) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// SearchRecipesOnline mocks the grounded search
func (m *MockAIGateway) SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error) {
	args := m.Called(ctx, query, lang)
	r, _ := args.Get(0).(search.Result)
	return r, args.Error(1)
}

// ResolveLanguage returns lang, or Language when set, or the default language
func (m *MockAIGateway) ResolveLanguage(_ string, lang shared.Language) shared.Language {
	if lang.Valid() {
		return lang
	}
	if m.Language.Valid() {
		return m.Language
	}
	return lang.OrDefault()
}

// MockPageReader provides a mock implementation of outbound.RecipePageReader
type MockPageReader struct {
	mock.Mock
}

var _ outbound.RecipePageReader = (*MockPageReader)(nil)

// Read mocks a page fetch
func (m *MockPageReader) Read(ctx context.Context, url string) (*outbound.ImportedPage, error) {
	args := m.Called(ctx, url)
	page, _ := args.Get(0).(*outbound.ImportedPage)
	return page, args.Error(1)
}

// MockWakeLockProvider provides a mock implementation of outbound.WakeLockProvider
type MockWakeLockProvider struct {
	mock.Mock
}

var _ outbound.WakeLockProvider = (*MockWakeLockProvider)(nil)

// Acquire mocks taking a lease
func (m *MockWakeLockProvider) Acquire(ctx context.Context, holder string) (cooking.Lease, error) {
	args := m.Called(ctx, holder)
	lease, _ := args.Get(0).(cooking.Lease)
	return lease, args.Error(1)
}

// CountingLease records how often Release was called
type CountingLease struct {
	Releases int
}

func (l *CountingLease) Release() { l.Releases++ }
