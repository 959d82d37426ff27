// Package language detects whether free text is Czech or Slovak.
package language

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

// minRunes is the shortest input worth classifying. Very short prompts such
// as "guláš" read the same in both languages.
const minRunes = 12

// Detector wraps a lingua detector restricted to the two UI languages.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds the detector. Loading the language models takes a
// moment, so build it once at startup.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Czech, lingua.Slovak).
			WithMinimumRelativeDistance(0.1).
			Build(),
	}
}

// Detect returns the language of text, or false when the text is too short
// or too ambiguous to tell.
func (d *Detector) Detect(text string) (shared.Language, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minRunes {
		return "", false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	switch lang {
	case lingua.Czech:
		return shared.Czech, true
	case lingua.Slovak:
		return shared.Slovak, true
	default:
		return "", false
	}
}
