// Package gemini provides the Google Gemini and Imagen integration used for
// recipe text, recipe images and grounded web search.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/transport"
)

// Config selects the endpoint and models
type Config struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	ImageModel  string
	SearchModel string
}

// Client implements outbound.AIProvider against the Generative Language REST API
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a Gemini client. The http client should carry the call timeout.
func NewClient(cfg Config, client *http.Client, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client, logger: logger.Named("gemini")}
}

// Name identifies the provider
func (c *Client) Name() ai.ProviderType { return ai.ProviderTypeGemini }

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
}

type groundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web"`
}

type candidate struct {
	Content           content `json:"content"`
	FinishReason      string  `json:"finishReason"`
	GroundingMetadata *struct {
		GroundingChunks []groundingChunk `json:"groundingChunks"`
	} `json:"groundingMetadata"`
}

type generateContentResponse struct {
	Candidates    []candidate `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// text concatenates the parts of the first candidate
func (r *generateContentResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

type predictRequest struct {
	Instances  []map[string]string `json:"instances"`
	Parameters predictParameters   `json:"parameters"`
}

type predictParameters struct {
	SampleCount   int               `json:"sampleCount"`
	AspectRatio   string            `json:"aspectRatio"`
	OutputOptions map[string]string `json:"outputOptions"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateRecipe asks for a schema-constrained JSON recipe
func (c *Client) GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error) {
	req := generateContentRequest{
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: ai.SystemInstruction(lang)}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   upperTypes(ai.RecipeSchema),
		},
	}

	var resp generateContentResponse
	if err := c.post(ctx, c.cfg.TextModel, "generateContent", req, &resp); err != nil {
		return ai.GeneratedRecipe{}, err
	}

	c.logger.Debug("recipe generated",
		zap.Int("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
		zap.Int("completion_tokens", resp.UsageMetadata.CandidatesTokenCount),
	)
	return ai.ParseGeneratedRecipe(resp.text())
}

// GenerateImage requests exactly one 4:3 JPEG
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := predictRequest{
		Instances: []map[string]string{{"prompt": prompt}},
		Parameters: predictParameters{
			SampleCount:   1,
			AspectRatio:   ai.ImageAspectRatio,
			OutputOptions: map[string]string{"mimeType": ai.ImageMimeType},
		},
	}

	var resp predictResponse
	if err := c.post(ctx, c.cfg.ImageModel, "predict", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", ai.ErrNoImage
	}
	return ai.DataURI(resp.Predictions[0].BytesBase64Encoded), nil
}

// SearchRecipesOnline runs a grounded generation with the Google Search tool
func (c *Client) SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error) {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: ai.SearchPrompt(query, lang)}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}

	var resp generateContentResponse
	if err := c.post(ctx, c.cfg.SearchModel, "generateContent", req, &resp); err != nil {
		return search.Result{}, err
	}

	var citations []search.Citation
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			citations = append(citations, search.Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return search.NewResult(resp.text(), citations), nil
}

// Ping lists models, which needs a valid key but no quota
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/models?pageSize=1", nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, model, method string, body, out any) error {
	url := fmt.Sprintf("%s/models/%s:%s", c.cfg.BaseURL, model, method)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}
	if err := transport.PostJSON(ctx, c.client, url, headers, body, out); err != nil {
		c.logger.Error("Gemini API call failed", zap.String("model", model), zap.String("method", method), zap.Error(err))
		return err
	}
	return nil
}

// upperTypes converts JSON-schema type names to the enum spelling the
// Gemini responseSchema expects.
func upperTypes(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		switch val := v.(type) {
		case string:
			if k == "type" {
				val = strings.ToUpper(val)
			}
			out[k] = val
		case map[string]any:
			out[k] = upperTypes(val)
		default:
			out[k] = v
		}
	}
	return out
}
