package export

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"graphdraw/diagram"
)

// JSONExporter exports drawings to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a drawing to JSON
func (e *JSONExporter) Export(d *diagram.Drawing) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}

// YAMLExporter exports drawings to YAML format
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a drawing to YAML
func (e *YAMLExporter) Export(d *diagram.Drawing) ([]byte, error) {
	return yaml.Marshal(d)
}

// GetFileExtension returns the file extension for YAML
func (e *YAMLExporter) GetFileExtension() string {
	return ".yaml"
}

// GetFormatName returns the format name
func (e *YAMLExporter) GetFormatName() string {
	return "YAML"
}
