package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResult_DedupesByURIFirstTitleWins(t *testing.T) {
	r := NewResult("  Shrnutí  ", []Citation{
		{Title: "Recepty.cz", URI: "https://recepty.cz/gulas"},
		{Title: "Jiný titulek", URI: "https://recepty.cz/gulas"},
	})

	assert.Equal(t, "Shrnutí", r.Summary)
	assert.Equal(t, []Source{{Title: "Recepty.cz", URI: "https://recepty.cz/gulas"}}, r.Sources)
}

func TestDedupe_SkipsIncompleteChunks(t *testing.T) {
	sources := Dedupe([]Citation{
		{Title: "", URI: "https://a"},
		{Title: "B", URI: ""},
		{Title: "C", URI: "https://c"},
	})

	assert.Equal(t, []Source{{Title: "C", URI: "https://c"}}, sources)
}

func TestDedupe_NeverNil(t *testing.T) {
	assert.NotNil(t, Dedupe(nil))
	assert.Empty(t, Dedupe(nil))
}

func TestOutcomeTransitions(t *testing.T) {
	idle := Idle()
	assert.False(t, idle.Performed)
	assert.Equal(t, StateIdle, idle.State)

	searching := Searching("guláš")
	assert.True(t, searching.Performed)

	empty := searching.Succeeded(Result{})
	assert.Equal(t, StateResults, empty.State)
	assert.True(t, empty.Performed)
	assert.NotNil(t, empty.Sources)

	failed := searching.Failed("Nepodařilo se vyhledat recepty: timeout")
	assert.Equal(t, StateError, failed.State)
	assert.Equal(t, "guláš", failed.Query)
}
