package diagram

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses an exported drawing. YAML is used when yamlInput is set,
// JSON otherwise. The result is normalized and validated.
func Decode(data []byte, yamlInput bool) (*Drawing, error) {
	var d Drawing
	if yamlInput {
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse YAML drawing: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse JSON drawing: %w", err)
		}
	}

	Normalize(&d)
	if err := Validate(&d); err != nil {
		return nil, fmt.Errorf("invalid drawing: %w", err)
	}

	return &d, nil
}

// Load reads an exported drawing from disk, choosing the decoder by file
// extension (.yaml/.yml, anything else is JSON).
func Load(filename string) (*Drawing, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	return Decode(data, ext == ".yaml" || ext == ".yml")
}
