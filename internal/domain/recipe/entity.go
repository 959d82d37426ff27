// Package recipe contains the recipe record, its normalization rules and the
// pure list operations used by the collection views.
package recipe

import (
	"strings"

	"github.com/google/uuid"
)

// Recipe is one entry of the persisted collection.
type Recipe struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Steps       []string `json:"steps" yaml:"steps"`
	Category    string   `json:"category" yaml:"category"`
	Image       string   `json:"image" yaml:"image,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
}

// Draft is the free-form payload of the create/edit form. Multi-line text
// fields take precedence over the array fields when both are set.
type Draft struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category"`
	Image           string   `json:"image" validate:"omitempty,recipe_image"`
	IngredientsText string   `json:"ingredientsText"`
	StepsText       string   `json:"stepsText"`
	Ingredients     []string `json:"ingredients"`
	Steps           []string `json:"steps"`
	SourceURL       string   `json:"sourceUrl" validate:"omitempty,url"`
}

// NewID returns a fresh stable identifier.
func NewID() string {
	return uuid.NewString()
}

// FromDraft builds a new recipe with a fresh id. An empty category becomes
// defaultCategory.
func FromDraft(d Draft, defaultCategory string) (Recipe, error) {
	r := Recipe{ID: NewID()}
	if err := r.Apply(d, defaultCategory); err != nil {
		return Recipe{}, err
	}
	return r, nil
}

// Apply overwrites the editable fields of r with the draft. The id is kept.
func (r *Recipe) Apply(d Draft, defaultCategory string) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrNameRequired
	}
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return ErrDescriptionRequired
	}

	r.Name = name
	r.Description = description
	r.Category = strings.TrimSpace(d.Category)
	if r.Category == "" {
		r.Category = defaultCategory
	}
	r.Image = d.Image
	r.SourceURL = d.SourceURL

	if d.IngredientsText != "" || d.Ingredients == nil {
		r.Ingredients = SplitLines(d.IngredientsText)
	} else {
		r.Ingredients = cleanLines(d.Ingredients)
	}
	if d.StepsText != "" || d.Steps == nil {
		r.Steps = SplitLines(d.StepsText)
	} else {
		r.Steps = cleanLines(d.Steps)
	}
	return nil
}

// ToDraft is the inverse used to prefill the edit form.
func (r Recipe) ToDraft() Draft {
	return Draft{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Image:           r.Image,
		IngredientsText: strings.Join(r.Ingredients, "\n"),
		StepsText:       strings.Join(r.Steps, "\n"),
		SourceURL:       r.SourceURL,
	}
}

// SplitLines splits text on newlines and drops lines that are blank after
// trimming. Never returns nil.
func SplitLines(text string) []string {
	return cleanLines(strings.Split(text, "\n"))
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Clone returns a deep copy so callers can mutate slices freely.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string{}, r.Ingredients...)
	c.Steps = append([]string{}, r.Steps...)
	return c
}
