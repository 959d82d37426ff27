package recipe

import "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"

// Categories lists the selectable categories per language. The last entry is
// the "other" category used when a recipe has none.
var categories = map[shared.Language][]string{
	shared.Czech:  {"Polévky", "Masová jídla", "Bezmasá jídla", "Přílohy", "Saláty", "Dezerty", "Ostatní"},
	shared.Slovak: {"Polievky", "Mäsové jedlá", "Bezmäsité jedlá", "Prílohy", "Šaláty", "Dezerty", "Ostatné"},
}

// Categories returns a copy of the category table for lang.
func Categories(lang shared.Language) []string {
	return append([]string{}, categories[lang.OrDefault()]...)
}

// DefaultCategory is the "other" category of lang.
func DefaultCategory(lang shared.Language) string {
	list := categories[lang.OrDefault()]
	return list[len(list)-1]
}

// CategoriesOf returns the distinct categories present in a collection, in
// first-seen order. Stored recipes may carry categories outside the table.
func CategoriesOf(recipes []Recipe) []string {
	seen := make(map[string]struct{}, len(recipes))
	out := []string{}
	for _, r := range recipes {
		if _, ok := seen[r.Category]; ok || r.Category == "" {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
