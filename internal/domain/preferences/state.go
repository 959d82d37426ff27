// Package preferences models the top-level application state: theme,
// language, active tab and fullscreen flag.
package preferences

import (
	"errors"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrUnknownTab   = errors.New("unknown tab")
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Tab string

const (
	TabGenerate  Tab = "generate"
	TabMyRecipes Tab = "my_recipes"
	TabSearch    Tab = "search"
)

// State is the application state shared by every view. Theme and Language
// are persisted; ActiveTab and Fullscreen are session-only.
type State struct {
	Theme      Theme           `json:"theme"`
	Language   shared.Language `json:"language"`
	ActiveTab  Tab             `json:"activeTab"`
	Fullscreen bool            `json:"fullscreen"`
}

// Default is the state of a first visit.
func Default() State {
	return State{
		Theme:     ThemeDark,
		Language:  shared.DefaultLanguage,
		ActiveTab: TabGenerate,
	}
}

// Patch carries optional changes. Nil fields are left alone.
type Patch struct {
	Theme      *Theme           `json:"theme"`
	Language   *shared.Language `json:"language"`
	ActiveTab  *Tab             `json:"activeTab"`
	Fullscreen *bool            `json:"fullscreen"`
}

// Apply validates and applies p, returning the new state.
func (s State) Apply(p Patch) (State, error) {
	if p.Theme != nil {
		if *p.Theme != ThemeLight && *p.Theme != ThemeDark {
			return s, ErrUnknownTheme
		}
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		lang, err := shared.ParseLanguage(string(*p.Language))
		if err != nil || lang == "" {
			return s, shared.ErrUnknownLanguage
		}
		s.Language = lang
	}
	if p.ActiveTab != nil {
		switch *p.ActiveTab {
		case TabGenerate, TabMyRecipes, TabSearch:
			s.ActiveTab = *p.ActiveTab
		default:
			return s, ErrUnknownTab
		}
	}
	if p.Fullscreen != nil {
		s.Fullscreen = *p.Fullscreen
	}
	return s, nil
}

// ParseTheme returns ThemeDark for anything but "light".
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}
