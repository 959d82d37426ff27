package recipe

import "strings"

// AllCategories is the filter sentinel that matches every category.
const AllCategories = "all"

// Filter returns the recipes whose category matches (or category is "all"
// or empty) and whose name, description or any ingredient contains the
// search term case-insensitively. Relative order is preserved.
func Filter(recipes []Recipe, searchTerm, category string) []Recipe {
	term := strings.ToLower(searchTerm)
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if category != "" && category != AllCategories && r.Category != category {
			continue
		}
		if !matches(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the recipe with the given id, or -1.
func IndexOf(recipes []Recipe, id string) int {
	for i, r := range recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Remove returns a new slice without the recipe with the given id.
func Remove(recipes []Recipe, id string) ([]Recipe, error) {
	idx := IndexOf(recipes, id)
	if idx < 0 {
		return recipes, ErrRecipeNotFound
	}
	out := make([]Recipe, 0, len(recipes)-1)
	out = append(out, recipes[:idx]...)
	return append(out, recipes[idx+1:]...), nil
}
