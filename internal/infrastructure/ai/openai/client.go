// Package openai provides the OpenAI integration for recipe text, images and
// web search. Any OpenAI-compatible endpoint works for the text stage.
package openai

import (
	"context"
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
	Model       string
	ImageModel  string
	SearchModel string
}

// Client implements outbound.AIProvider using the OpenAI API
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new OpenAI client
func NewClient(cfg Config, client *http.Client, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	logger = logger.Named("openai")
	logger.Info("OpenAI client initialized", zap.String("base_url", cfg.BaseURL), zap.String("model", cfg.Model))
	return &Client{cfg: cfg, client: client, logger: logger}
}

// Name identifies the provider
func (c *Client) Name() ai.ProviderType { return ai.ProviderTypeOpenAI }

// OpenAI API structures
type ChatCompletionRequest struct {
	Model            string          `json:"model"`
	Messages         []Message       `json:"messages"`
	ResponseFormat   *ResponseFormat `json:"response_format,omitempty"`
	WebSearchOptions *struct{}       `json:"web_search_options,omitempty"`
}

type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type Message struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Annotation struct {
	Type        string `json:"type"`
	URLCitation *struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"url_citation,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
	OutputFormat   string `json:"output_format,omitempty"`
}

type ImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateRecipe generates a recipe with structured output
func (c *Client) GenerateRecipe(ctx context.Context, prompt string, lang shared.Language) (ai.GeneratedRecipe, error) {
	req := ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: ai.SystemInstruction(lang)},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   "recipe",
				Strict: true,
				Schema: strictSchema(ai.RecipeSchema),
			},
		},
	}

	content, err := c.chat(ctx, req)
	if err != nil {
		return ai.GeneratedRecipe{}, err
	}
	return ai.ParseGeneratedRecipe(content.Content)
}

// GenerateImage requests one landscape JPEG. The images API has no 4:3 size;
// 1536x1024 is the closest landscape option.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := ImageRequest{
		Model:  c.cfg.ImageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1536x1024",
	}
	if strings.HasPrefix(c.cfg.ImageModel, "dall-e") {
		req.Size = "1792x1024"
		req.ResponseFormat = "b64_json"
	} else {
		req.OutputFormat = "jpeg"
	}

	var resp ImageResponse
	if err := transport.PostJSON(ctx, c.client, c.cfg.BaseURL+"/images/generations", c.headers(), req, &resp); err != nil {
		c.logger.Error("OpenAI image call failed", zap.Error(err))
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", ai.ErrNoImage
	}
	return ai.DataURI(resp.Data[0].B64JSON), nil
}

// SearchRecipesOnline uses a search-enabled chat model and collects its url citations
func (c *Client) SearchRecipesOnline(ctx context.Context, query string, lang shared.Language) (search.Result, error) {
	req := ChatCompletionRequest{
		Model:            c.cfg.SearchModel,
		Messages:         []Message{{Role: "user", Content: ai.SearchPrompt(query, lang)}},
		WebSearchOptions: &struct{}{},
	}

	msg, err := c.chat(ctx, req)
	if err != nil {
		return search.Result{}, err
	}

	var citations []search.Citation
	for _, a := range msg.Annotations {
		if a.Type != "url_citation" || a.URLCitation == nil {
			continue
		}
		citations = append(citations, search.Citation{Title: a.URLCitation.Title, URI: a.URLCitation.URL})
	}
	return search.NewResult(msg.Content, citations), nil
}

func (c *Client) chat(ctx context.Context, req ChatCompletionRequest) (Message, error) {
	var resp ChatCompletionResponse
	if err := transport.PostJSON(ctx, c.client, c.cfg.BaseURL+"/chat/completions", c.headers(), req, &resp); err != nil {
		c.logger.Error("OpenAI API call failed", zap.String("model", req.Model), zap.Error(err))
		return Message{}, err
	}
	if len(resp.Choices) == 0 {
		return Message{}, ai.ErrMalformedResponse
	}

	c.logger.Info("OpenAI API call successful",
		zap.String("model", req.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
}

// strictSchema adds additionalProperties=false to every object, which strict
// structured outputs require.
func strictSchema(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema)+1)
	for k, v := range schema {
		if m, ok := v.(map[string]any); ok {
			out[k] = strictSchema(m)
			continue
		}
		out[k] = v
	}
	if out["type"] == "object" {
		out["additionalProperties"] = false
	}
	return out
}
