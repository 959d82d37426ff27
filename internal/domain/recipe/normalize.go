package recipe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// legacy field names written by the first version of the browser client
var fieldAliases = map[string][]string{
	"name":        {"name", "nazev"},
	"description": {"description", "popis"},
	"ingredients": {"ingredients", "ingredience"},
	"steps":       {"steps", "postup"},
	"category":    {"category", "kategorie"},
	"image":       {"image", "obrazek"},
	"sourceUrl":   {"sourceUrl", "source_url"},
	"id":          {"id"},
}

// DecodeCollection parses a persisted collection and normalizes each entry.
// Any parse error or a top-level value that is not an array of objects is
// returned as an error; the caller decides on the fallback.
func DecodeCollection(data []byte, defaultCategory string) ([]Recipe, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top-level value is null", ErrSchemaMismatch)
	}

	recipes := make([]Recipe, 0, len(raw))
	for i, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrSchemaMismatch, i)
		}
		r := Normalize(fields, defaultCategory)
		if r.ID == "" {
			r.ID = derivedID(i, r)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// EncodeCollection serializes the collection in the current field names.
func EncodeCollection(recipes []Recipe) ([]byte, error) {
	if recipes == nil {
		recipes = []Recipe{}
	}
	return json.Marshal(recipes)
}

// Normalize coerces a loosely typed record into a Recipe. Missing or
// mistyped text fields become empty strings, missing or mistyped lists
// become empty slices and an empty category becomes defaultCategory. A
// missing id stays empty; DecodeCollection derives one.
func Normalize(fields map[string]any, defaultCategory string) Recipe {
	r := Recipe{
		ID:          stringField(fields, "id"),
		Name:        stringField(fields, "name"),
		Description: stringField(fields, "description"),
		Ingredients: listField(fields, "ingredients"),
		Steps:       listField(fields, "steps"),
		Category:    stringField(fields, "category"),
		Image:       stringField(fields, "image"),
		SourceURL:   stringField(fields, "sourceUrl"),
	}
	if r.Category == "" {
		r.Category = defaultCategory
	}
	return r
}

// NormalizeAll fills defaults on already typed records.
func NormalizeAll(recipes []Recipe, defaultCategory string) []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for i, r := range recipes {
		if r.Ingredients == nil {
			r.Ingredients = []string{}
		}
		if r.Steps == nil {
			r.Steps = []string{}
		}
		if r.Category == "" {
			r.Category = defaultCategory
		}
		if r.ID == "" {
			r.ID = derivedID(i, r)
		}
		out = append(out, r)
	}
	return out
}

func lookup(fields map[string]any, key string) (any, bool) {
	for _, alias := range fieldAliases[key] {
		if v, ok := fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(fields map[string]any, key string) string {
	v, ok := lookup(fields, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func listField(fields map[string]any, key string) []string {
	out := []string{}
	v, ok := lookup(fields, key)
	if !ok {
		return out
	}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// derivedID gives records stored without an id the same id on every load
// until the collection is saved again.
func derivedID(position int, r Recipe) string {
	name := fmt.Sprintf("%d\x00%s\x00%s\x00%s", position, r.Name, r.Description, strings.Join(r.Steps, "\x00"))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
