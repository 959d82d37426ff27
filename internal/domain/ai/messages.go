package ai

import "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"

// User-facing failure prefixes. The provider detail is appended after the colon.
const (
	RecipeFailurePrefix = "Nepodařilo se vygenerovat recept"
	ImageFailurePrefix  = "Nepodařilo se vygenerovat obrázek"
	SearchFailurePrefix = "Nepodařilo se vyhledat recepty"
)

var promptRequired = map[shared.Language]string{
	shared.Czech:  "Prosím, zadejte co byste chtěli uvařit.",
	shared.Slovak: "Prosím, zadajte, čo by ste chceli uvariť.",
}

// PromptRequiredMessage is shown when a prompt or query is blank.
func PromptRequiredMessage(lang shared.Language) string {
	return promptRequired[lang.OrDefault()]
}
