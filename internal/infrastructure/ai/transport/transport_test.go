package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
)

func TestPostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct{ OK bool }
	err := PostJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, map[string]string{"X-Api-Key": "secret"}, map[string]string{"a": "b"}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestPostJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	var out map[string]any
	err := PostJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, nil, struct{}{}, &out)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "API key not valid", statusErr.Message)
}

func TestPostJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := PostJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, nil, struct{}{}, &out)

	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}
