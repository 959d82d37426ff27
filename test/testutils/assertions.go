// Package testutils provides custom assertions for testing
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// AssertValidRecipe checks the invariants every stored recipe satisfies
func AssertValidRecipe(t *testing.T, r recipe.Recipe, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NotEmpty(t, r.ID, msgAndArgs...)
	assert.NotEmpty(t, r.Name, msgAndArgs...)
	assert.NotEmpty(t, r.Description, msgAndArgs...)
	assert.NotEmpty(t, r.Category, msgAndArgs...)
	assert.NotNil(t, r.Ingredients, msgAndArgs...)
	assert.NotNil(t, r.Steps, msgAndArgs...)
}

// DecodeJSON decodes a recorded response body into target
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

// AssertErrorResponse checks status and error code of an API error body
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code apperrors.ErrorCode) apperrors.ErrorResponse {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())

	var body apperrors.ErrorResponse
	DecodeJSON(t, w, &body)
	assert.Equal(t, code, body.Error.Code)
	return body
}
