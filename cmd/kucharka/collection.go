package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// formatOf picks the format from an explicit flag value or the file extension
func formatOf(flagValue, path string) (string, error) {
	format := strings.ToLower(flagValue)
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = formatYAML
		default:
			format = formatJSON
		}
	}
	if format != formatJSON && format != formatYAML {
		return "", fmt.Errorf("unsupported format %q (json or yaml)", flagValue)
	}
	return format, nil
}

// encodeCollection writes the collection in the same field names the store uses
func encodeCollection(recipes []recipe.Recipe, format string) ([]byte, error) {
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	if format == formatYAML {
		return yaml.Marshal(recipes)
	}
	return json.MarshalIndent(recipes, "", "  ")
}

// decodeCollection reads an exported collection. JSON input goes through the
// store's decoder so files written by older clients keep working.
func decodeCollection(data []byte, format, defaultCategory string) ([]recipe.Recipe, error) {
	if format == formatYAML {
		var recipes []recipe.Recipe
		if err := yaml.Unmarshal(data, &recipes); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return recipe.NormalizeAll(recipes, defaultCategory), nil
	}
	return recipe.DecodeCollection(data, defaultCategory)
}
