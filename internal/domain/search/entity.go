// Package search models grounded web search results and the state of one
// search submission.
package search

import (
	"errors"
	"strings"
)

// ErrQueryRequired is returned for a blank query; no provider call is made.
var ErrQueryRequired = errors.New("search query is required")

// Source is one cited web page.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Citation is a raw grounding chunk as returned by a provider. Either field
// may be empty.
type Citation struct {
	Title string
	URI   string
}

// Result is the summary text plus de-duplicated sources.
type Result struct {
	Summary string   `json:"summary"`
	Sources []Source `json:"sources"`
}

// NewResult trims the summary and keeps citations that carry both a title
// and a uri, de-duplicated by uri with the first title winning.
func NewResult(summary string, citations []Citation) Result {
	return Result{
		Summary: strings.TrimSpace(summary),
		Sources: Dedupe(citations),
	}
}

// Dedupe never returns nil.
func Dedupe(citations []Citation) []Source {
	seen := make(map[string]struct{}, len(citations))
	sources := make([]Source, 0, len(citations))
	for _, c := range citations {
		if c.Title == "" || c.URI == "" {
			continue
		}
		if _, dup := seen[c.URI]; dup {
			continue
		}
		seen[c.URI] = struct{}{}
		sources = append(sources, Source{Title: c.Title, URI: c.URI})
	}
	return sources
}

// Empty reports whether the search produced neither text nor sources.
func (r Result) Empty() bool {
	return r.Summary == "" && len(r.Sources) == 0
}
