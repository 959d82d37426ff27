package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

func TestDetector_Detect(t *testing.T) {
	d := NewDetector()

	lang, ok := d.Detect("Chtěl bych uvařit něco rychlého z kuřecího masa a rýže, ideálně bez smetany.")
	assert.True(t, ok)
	assert.Equal(t, shared.Czech, lang)

	lang, ok = d.Detect("Chcel by som uvariť niečo rýchle z kuracieho mäsa a ryže, ideálne bez smotany.")
	assert.True(t, ok)
	assert.Equal(t, shared.Slovak, lang)
}

func TestDetector_Detect_TooShort(t *testing.T) {
	_, ok := NewDetector().Detect("guláš")
	assert.False(t, ok)
}
