package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("Zadejte prosím, co chcete vařit."), http.StatusBadRequest},
		{"not found", NewRecipeNotFoundError("abc"), http.StatusNotFound},
		{"transport", NewTransportFailure("boom", fmt.Errorf("dial")), http.StatusBadGateway},
		{"malformed", NewMalformedResponse("bad", nil), http.StatusBadGateway},
		{"no image", NewNoImageReturned("none"), http.StatusBadGateway},
		{"conflict", NewConflictError("superseded"), http.StatusConflict},
		{"rate limit", NewTooManyRequestsError(), http.StatusTooManyRequests},
		{"storage", NewStorageReadError("my-recipes", fmt.Errorf("eof")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestIsAndGetCode_WrappedErrors(t *testing.T) {
	base := NewMalformedResponse("bad json", nil)
	wrapped := fmt.Errorf("generate: %w", base)

	assert.True(t, Is(wrapped, CodeMalformedResponse))
	assert.False(t, Is(wrapped, CodeTransportFailure))
	assert.Equal(t, CodeMalformedResponse, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(fmt.Errorf("plain")))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	appErr := NewNotFoundError("Recipe")
	assert.Same(t, appErr, Wrap(appErr, "ignored"))

	cause := fmt.Errorf("disk full")
	wrapped := Wrap(cause, "save failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewRecipeNotFoundError("42"), "req-1")

	assert.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "42", resp.Error.Metadata["recipe_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
