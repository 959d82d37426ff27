package ai

import (
	"fmt"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

var systemInstructions = map[shared.Language]string{
	shared.Czech:  "Jsi nápomocný šéfkuchař, který vytváří jednoduché a chutné recepty v českém jazyce. Vždy odpovídej ve formátu JSON.",
	shared.Slovak: "Si nápomocný šéfkuchár, ktorý vytvára jednoduché a chutné recepty v slovenskom jazyku. Vždy odpovedaj vo formáte JSON.",
}

// SystemInstruction returns the chef persona for lang.
func SystemInstruction(lang shared.Language) string {
	return systemInstructions[lang.OrDefault()]
}

// SearchPrompt embeds the user query in the grounded search request.
func SearchPrompt(query string, lang shared.Language) string {
	if lang.OrDefault() == shared.Slovak {
		return fmt.Sprintf("Prehľadaj populárne slovenské weby s receptami a nájdi recepty pre '%s'. Vytvor krátke, zaujímavé zhrnutie o nájdených receptoch. Môžeš spomenúť zaujímavosti, varianty alebo tipy na servírovanie. Do tohto zhrnutia NEVKLADAJ žiadne odkazy.", query)
	}
	return fmt.Sprintf("Prohledej populární české weby s recepty a najdi recepty pro '%s'. Vytvoř krátké, zajímavé shrnutí o nalezených receptech. Můžeš zmínit zajímavosti, varianty nebo tipy k servírování. Do tohoto shrnutí NEVKLÁDEJ žádné odkazy.", query)
}

// ImportPrompt asks for a recipe extracted from readable page text.
func ImportPrompt(pageTitle, pageText string, lang shared.Language) string {
	if lang.OrDefault() == shared.Slovak {
		return fmt.Sprintf("Z nasledujúceho textu webovej stránky \"%s\" vytiahni recept. Zachovaj ingrediencie a postup, nič nevymýšľaj.\n\n%s", pageTitle, pageText)
	}
	return fmt.Sprintf("Z následujícího textu webové stránky \"%s\" vytáhni recept. Zachovej ingredience a postup, nic nevymýšlej.\n\n%s", pageTitle, pageText)
}

// RecipeSchema describes the JSON object every provider must return. Field
// descriptions guide the model.
var RecipeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "description": "Název receptu."},
		"description": map[string]any{"type": "string", "description": "Krátký, lákavý popis receptu."},
		"ingredients": map[string]any{
			"type":        "array",
			"description": "Seznam ingrediencí potřebných pro recept.",
			"items":       map[string]any{"type": "string"},
		},
		"steps": map[string]any{
			"type":        "array",
			"description": "Kroky pro přípravu jídla, seřazené postupně.",
			"items":       map[string]any{"type": "string"},
		},
	},
	"required": []string{"name", "description", "ingredients", "steps"},
}
