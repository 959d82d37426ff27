package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/transport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey: "key", BaseURL: srv.URL + "/",
		TextModel: "gemini-2.5-flash", ImageModel: "imagen-4.0-generate-001", SearchModel: "gemini-2.5-flash",
	}, transport.NewHTTPClient(5*time.Second), zap.NewNop())
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestGenerateRecipe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))

		body := decodeBody(t, r)
		system := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
		assert.Contains(t, system, "slovenskom")
		config := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", config["responseMimeType"])
		assert.Equal(t, "OBJECT", config["responseSchema"].(map[string]any)["type"])

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" {\"name\":\"Test\",\"description\":\"Desc\",\"ingredients\":[\"a\",\"b\"],\"steps\":[\"s1\",\"s2\"]} "}]}}]}`))
	})

	got, err := client.GenerateRecipe(context.Background(), "halušky", shared.Slovak)

	require.NoError(t, err)
	assert.Equal(t, ai.GeneratedRecipe{Name: "Test", Description: "Desc", Ingredients: []string{"a", "b"}, Steps: []string{"s1", "s2"}}, got)
}

func TestGenerateRecipe_MalformedAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"name\":\"\"}"}]}}]}`))
	})

	_, err := client.GenerateRecipe(context.Background(), "x", shared.Czech)

	assert.ErrorIs(t, err, ai.ErrBadRecipeShape)
}

func TestGenerateImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/imagen-4.0-generate-001:predict", r.URL.Path)
		params := decodeBody(t, r)["parameters"].(map[string]any)
		assert.EqualValues(t, 1, params["sampleCount"])
		assert.Equal(t, "4:3", params["aspectRatio"])
		assert.Equal(t, "image/jpeg", params["outputOptions"].(map[string]any)["mimeType"])

		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"QUJD","mimeType":"image/jpeg"}]}`))
	})

	got, err := client.GenerateImage(context.Background(), ai.ImagePrompt("Guláš"))

	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", got)
}

func TestGenerateImage_NoImages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	})

	_, err := client.GenerateImage(context.Background(), "x")

	assert.ErrorIs(t, err, ai.ErrNoImage)
}

func TestSearchRecipesOnline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		tools := body["tools"].([]any)
		assert.Contains(t, tools[0].(map[string]any), "google_search")
		text := body["contents"].([]any)[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
		assert.True(t, strings.Contains(text, "'svíčková'"))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Svíčková je klasika.  "}]},
			"groundingMetadata":{"groundingChunks":[
				{"web":{"uri":"https://a.cz","title":"A"}},
				{"web":{"uri":"https://a.cz","title":"A2"}},
				{"web":{"uri":"","title":"No uri"}},
				{}
			]}}]}`))
	})

	got, err := client.SearchRecipesOnline(context.Background(), "svíčková", shared.Czech)

	require.NoError(t, err)
	assert.Equal(t, "Svíčková je klasika.", got.Summary)
	assert.Equal(t, []search.Source{{Title: "A", URI: "https://a.cz"}}, got.Sources)
}

func TestTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"permission denied"}}`))
	})

	_, err := client.GenerateRecipe(context.Background(), "x", shared.Czech)

	var statusErr *transport.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}
