package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

func TestApply(t *testing.T) {
	light := ThemeLight
	sk := shared.Slovak
	tab := TabSearch
	full := true

	s, err := Default().Apply(Patch{Theme: &light, Language: &sk, ActiveTab: &tab, Fullscreen: &full})

	require.NoError(t, err)
	assert.Equal(t, State{Theme: ThemeLight, Language: shared.Slovak, ActiveTab: TabSearch, Fullscreen: true}, s)
}

func TestApply_RejectsUnknownValues(t *testing.T) {
	bad := Theme("neon")
	_, err := Default().Apply(Patch{Theme: &bad})
	assert.ErrorIs(t, err, ErrUnknownTheme)

	de := shared.Language("de")
	_, err = Default().Apply(Patch{Language: &de})
	assert.ErrorIs(t, err, shared.ErrUnknownLanguage)

	tab := Tab("settings")
	_, err = Default().Apply(Patch{ActiveTab: &tab})
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestApply_EmptyPatchIsNoop(t *testing.T) {
	s, err := Default().Apply(Patch{})
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}
