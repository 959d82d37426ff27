// Package web fetches recipe pages and extracts either structured recipe data
// or the readable article text.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

var (
	ErrUnsupportedURL = errors.New("only http and https URLs can be imported")
	ErrPageTooLarge   = errors.New("page exceeds the size limit")
	ErrNoContent      = errors.New("page has no readable content")
)

// Config limits what the reader downloads
type Config struct {
	MaxPageBytes int64
	MaxTextChars int
	UserAgent    string
}

// Reader implements outbound.RecipePageReader
type Reader struct {
	client *http.Client
	cfg    Config
	logger *zap.Logger
}

// NewReader creates a page reader. The client carries the fetch timeout.
func NewReader(cfg Config, client *http.Client, logger *zap.Logger) *Reader {
	return &Reader{client: client, cfg: cfg, logger: logger.Named("page-reader")}
}

// Read downloads rawURL and extracts its recipe
func (r *Reader) Read(ctx context.Context, rawURL string) (*outbound.ImportedPage, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, ErrUnsupportedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if r.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	var src io.Reader = resp.Body
	if r.cfg.MaxPageBytes > 0 {
		src = io.LimitReader(resp.Body, r.cfg.MaxPageBytes+1)
	}
	body, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	if r.cfg.MaxPageBytes > 0 && int64(len(body)) > r.cfg.MaxPageBytes {
		return nil, ErrPageTooLarge
	}

	page, err := Parse(pageURL, body, r.cfg.MaxTextChars)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Page read",
		zap.String("url", page.URL),
		zap.Bool("structured", page.Recipe != nil),
		zap.Int("text_length", len(page.Text)),
	)
	return page, nil
}

// Parse extracts a recipe from an already downloaded page. Structured
// schema.org data wins; otherwise the readable text is returned, cut to
// maxText runes when maxText is positive.
func Parse(pageURL *url.URL, body []byte, maxText int) (*outbound.ImportedPage, error) {
	page := &outbound.ImportedPage{URL: pageURL.String()}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	page.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var node any
		if err := json.Unmarshal([]byte(s.Text()), &node); err != nil {
			return true
		}
		if found := findRecipe(node); found != nil {
			draft := draftFromLD(found)
			if draft.Name != "" && (len(draft.Ingredients) > 0 || len(draft.Steps) > 0) {
				draft.SourceURL = page.URL
				page.Recipe = &draft
				return false
			}
		}
		return true
	})
	if page.Recipe != nil {
		return page, nil
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}
	if article.Title != "" {
		page.Title = article.Title
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("parse article: %w", err)
	}
	page.Text = truncate(strings.Join(strings.Fields(content.Text()), " "), maxText)
	if page.Text == "" {
		return nil, ErrNoContent
	}
	return page, nil
}

// findRecipe walks a JSON-LD value looking for a node typed Recipe. Arrays
// and @graph containers are searched depth first.
func findRecipe(node any) map[string]any {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			if found := findRecipe(item); found != nil {
				return found
			}
		}
	case map[string]any:
		if hasType(v["@type"], "Recipe") {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func hasType(value any, want string) bool {
	switch t := value.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func draftFromLD(node map[string]any) recipe.Draft {
	return recipe.Draft{
		Name:        text(node["name"]),
		Description: text(node["description"]),
		Image:       imageURL(node["image"]),
		Ingredients: textList(node["recipeIngredient"]),
		Steps:       instructions(node["recipeInstructions"]),
	}
}

func text(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(html.UnescapeString(s))
}

// textList flattens a string or list of strings, skipping blanks.
func textList(value any) []string {
	var out []string
	switch v := value.(type) {
	case string:
		if s := text(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			if s := text(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// instructions accepts plain text, lists of strings, HowToStep objects and
// HowToSection groups of steps.
func instructions(value any) []string {
	var out []string
	switch v := value.(type) {
	case string:
		out = append(out, recipe.SplitLines(html.UnescapeString(v))...)
	case []any:
		for _, item := range v {
			out = append(out, instructions(item)...)
		}
	case map[string]any:
		if hasType(v["@type"], "HowToSection") {
			return instructions(v["itemListElement"])
		}
		if s := text(v["text"]); s != "" {
			out = append(out, s)
		} else if s := text(v["name"]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func imageURL(value any) string {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return v
		}
	case []any:
		for _, item := range v {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		return imageURL(v["url"])
	}
	return ""
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
