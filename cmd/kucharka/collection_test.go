package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		flag, path string
		want       string
		wantErr    bool
	}{
		{"", "", formatJSON, false},
		{"", "recipes.json", formatJSON, false},
		{"", "recipes.YML", formatYAML, false},
		{"yaml", "recipes.json", formatYAML, false},
		{"JSON", "", formatJSON, false},
		{"xml", "", "", true},
	}
	for _, tt := range tests {
		got, err := formatOf(tt.flag, tt.path)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "flag=%q path=%q", tt.flag, tt.path)
	}
}

func TestCollectionExportImport(t *testing.T) {
	recipes := []recipe.Recipe{{
		ID:          "1",
		Name:        "Bramboráky",
		Description: "Křupavé placky",
		Ingredients: []string{"brambory", "česnek"},
		Steps:       []string{"Nastrouhat.", "Osmažit."},
		Category:    "Hlavní jídla",
	}}

	for _, format := range []string{formatJSON, formatYAML} {
		t.Run(format, func(t *testing.T) {
			data, err := encodeCollection(recipes, format)
			require.NoError(t, err)

			got, err := decodeCollection(data, format, "Ostatní")
			require.NoError(t, err)
			assert.Equal(t, recipes, got)
		})
	}
}

func TestDecodeCollection_FillsDefaults(t *testing.T) {
	got, err := decodeCollection([]byte("- name: Kulajda\n  description: Polévka\n"), formatYAML, "Ostatní")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ostatní", got[0].Category)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, []string{}, got[0].Ingredients)

	got, err = decodeCollection([]byte(`[{"nazev":"Kulajda","popis":"Polévka"}]`), formatJSON, "Ostatní")
	require.NoError(t, err)
	assert.Equal(t, "Kulajda", got[0].Name)

	_, err = decodeCollection([]byte(`{"name":"x"}`), formatJSON, "Ostatní")
	assert.Error(t, err)
}

func TestEncodeCollection_EmptyIsArray(t *testing.T) {
	data, err := encodeCollection(nil, formatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
