package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"cz", Czech, false},
		{" SK ", Slovak, false},
		{"", "", false},
		{"de", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, Slovak, Slovak.OrDefault())
	assert.Equal(t, Czech, Language("").OrDefault())
}
