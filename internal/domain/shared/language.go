// Package shared holds value types used across several domain packages.
package shared

import (
	"errors"
	"strings"
)

// Language selects the locale of AI prompts, system instructions and the
// category table.
type Language string

const (
	Czech  Language = "cz"
	Slovak Language = "sk"
)

// DefaultLanguage is used when a request carries no language and detection is inconclusive.
const DefaultLanguage = Czech

// ErrUnknownLanguage is returned for language codes other than cz and sk.
var ErrUnknownLanguage = errors.New("unknown language")

// ParseLanguage accepts "cz" or "sk" in any case. An empty string yields
// ("", nil) so callers can decide whether to detect or default.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case Czech:
		return Czech, nil
	case Slovak:
		return Slovak, nil
	default:
		return "", ErrUnknownLanguage
	}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Czech || l == Slovak
}

// OrDefault returns l, or the default language when l is not supported.
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return DefaultLanguage
}
