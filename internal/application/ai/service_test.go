package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/mock"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/transport"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

type recordedCall struct {
	provider, operation, status string
}

type fakeMetrics struct {
	calls []recordedCall
}

func (m *fakeMetrics) AIRequest(provider, operation, status string, _ time.Duration) {
	m.calls = append(m.calls, recordedCall{provider, operation, status})
}

type fixedDetector struct {
	lang shared.Language
}

func (d fixedDetector) Detect(string) (shared.Language, bool) { return d.lang, d.lang != "" }

func TestGateway_GenerateRecipe(t *testing.T) {
	metrics := &fakeMetrics{}
	g := NewGateway(mock.NewClient(), zap.NewNop(), WithMetrics(metrics))

	r, err := g.GenerateRecipe(context.Background(), "guláš", shared.Czech)
	require.NoError(t, err)

	assert.Contains(t, r.Name, "guláš")
	assert.Equal(t, []recordedCall{{"mock", "generate_recipe", "success"}}, metrics.calls)
}

func TestGateway_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		op      ai.Operation
		err     error
		code    apperrors.ErrorCode
		message string
	}{
		{
			name:    "transport failure",
			op:      ai.OperationRecipe,
			err:     &transport.StatusError{StatusCode: 401, Message: "API key not valid"},
			code:    apperrors.CodeTransportFailure,
			message: "Nepodařilo se vygenerovat recept: ",
		},
		{
			name:    "bad recipe shape",
			op:      ai.OperationRecipe,
			err:     ai.ErrBadRecipeShape,
			code:    apperrors.CodeMalformedResponse,
			message: "Nepodařilo se vygenerovat recept: Odpověď z API nemá správný formát receptu.",
		},
		{
			name:    "invalid json",
			op:      ai.OperationRecipe,
			err:     fmt.Errorf("%w: invalid JSON: eof", ai.ErrMalformedResponse),
			code:    apperrors.CodeMalformedResponse,
			message: "Nepodařilo se vygenerovat recept: malformed response",
		},
		{
			name:    "no image",
			op:      ai.OperationImage,
			err:     ai.ErrNoImage,
			code:    apperrors.CodeNoImageReturned,
			message: "Nepodařilo se vygenerovat obrázek: API nevrátilo žádný obrázek.",
		},
		{
			name:    "search network error",
			op:      ai.OperationSearch,
			err:     errors.New("dial tcp: connection refused"),
			code:    apperrors.CodeTransportFailure,
			message: "Nepodařilo se vyhledat recepty: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mock.NewClient()
			provider.FailWith(tt.op, tt.err)
			metrics := &fakeMetrics{}
			g := NewGateway(provider, zap.NewNop(), WithMetrics(metrics))

			var err error
			switch tt.op {
			case ai.OperationRecipe:
				_, err = g.GenerateRecipe(context.Background(), "x", shared.Czech)
			case ai.OperationImage:
				_, err = g.GenerateImage(context.Background(), "x")
			case ai.OperationSearch:
				_, err = g.SearchRecipesOnline(context.Background(), "x", shared.Czech)
			}

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Contains(t, appErr.Message, tt.message)
			assert.ErrorIs(t, err, tt.err)
			require.Len(t, metrics.calls, 1)
			assert.Equal(t, "error", metrics.calls[0].status)
		})
	}
}

func TestGateway_ResolveLanguage(t *testing.T) {
	g := NewGateway(mock.NewClient(), zap.NewNop(),
		WithLanguageDetector(fixedDetector{lang: shared.Slovak}),
		WithDefaultLanguage(shared.Czech),
	)

	assert.Equal(t, shared.Czech, g.ResolveLanguage("cokoľvek", shared.Czech))
	assert.Equal(t, shared.Slovak, g.ResolveLanguage("cokoľvek", ""))

	plain := NewGateway(mock.NewClient(), zap.NewNop(), WithDefaultLanguage(shared.Slovak))
	assert.Equal(t, shared.Slovak, plain.ResolveLanguage("x", ""))
}

func TestGateway_SearchNeverReturnsNilSources(t *testing.T) {
	g := NewGateway(mock.NewClient(), zap.NewNop())

	result, err := g.SearchRecipesOnline(context.Background(), "svíčková", "")
	require.NoError(t, err)
	assert.NotNil(t, result.Sources)
	assert.NotEmpty(t, result.Summary)
}

func TestGateway_Timeout(t *testing.T) {
	g := NewGateway(slowProvider{Client: mock.NewClient()}, zap.NewNop(), WithTimeouts(10*time.Millisecond, 0))

	_, err := g.GenerateRecipe(context.Background(), "x", shared.Czech)

	assert.True(t, apperrors.Is(err, apperrors.CodeTransportFailure))
	assert.Contains(t, err.Error(), "vypršel časový limit")
}

type slowProvider struct {
	*mock.Client
}

func (p slowProvider) GenerateRecipe(ctx context.Context, _ string, _ shared.Language) (ai.GeneratedRecipe, error) {
	<-ctx.Done()
	return ai.GeneratedRecipe{}, ctx.Err()
}
