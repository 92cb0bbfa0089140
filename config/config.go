// Package config loads graphdraw settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"graphdraw/editor"
	"graphdraw/export"
	"graphdraw/geometry"
)

// Config holds graphdraw configuration.
type Config struct {
	Geometry GeometryConfig `toml:"geometry"`
	History  HistoryConfig  `toml:"history"`
	Export   ExportConfig   `toml:"export"`
	Log      LogConfig      `toml:"log"`
}

// GeometryConfig controls node sizing and pointer tolerances.
type GeometryConfig struct {
	MinRadius     float64 `toml:"min_radius"`
	Padding       float64 `toml:"padding"`
	FontSize      float64 `toml:"font_size"`
	EdgeThreshold float64 `toml:"edge_threshold"`
	EdgeSnap      float64 `toml:"edge_snap"`
	EdgeRatio     float64 `toml:"edge_ratio"`
}

// HistoryConfig controls undo depth.
type HistoryConfig struct {
	Size int `toml:"size"`
}

// ExportConfig controls raster output and the default file name.
type ExportConfig struct {
	Padding   float64 `toml:"padding"`
	LineWidth float64 `toml:"line_width"`
	Filename  string  `toml:"filename"` // Base name, extension comes from the format
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	File   string `toml:"file"`   // Empty logs to stderr
	Format string `toml:"format"` // "console" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Geometry: GeometryConfig{
			MinRadius:     geometry.DefaultMinRadius,
			Padding:       geometry.DefaultPadding,
			FontSize:      geometry.DefaultFontSize,
			EdgeThreshold: geometry.DefaultEdgeThreshold,
			EdgeSnap:      geometry.DefaultEdgeSnap,
			EdgeRatio:     geometry.DefaultEdgeRatio,
		},
		History: HistoryConfig{Size: editor.DefaultHistorySize},
		Export: ExportConfig{
			Padding:   export.DefaultPadding,
			LineWidth: export.DefaultLineWidth,
			Filename:  "graph_data",
		},
		Log: LogConfig{
			Level:  "info",
			File:   filepath.Join(os.TempDir(), "graphdraw.log"),
			Format: "console",
		},
	}
}

// Dir returns the graphdraw config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphdraw")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects values the editor cannot work with.
func (c *Config) Validate() error {
	g := c.Geometry
	switch {
	case g.MinRadius <= 0:
		return errors.New("geometry.min_radius must be positive")
	case g.FontSize <= 0:
		return errors.New("geometry.font_size must be positive")
	case g.Padding < 0:
		return errors.New("geometry.padding must not be negative")
	case g.EdgeThreshold <= 0:
		return errors.New("geometry.edge_threshold must be positive")
	case g.EdgeRatio < 0 || g.EdgeRatio > 1:
		return errors.New("geometry.edge_ratio must be between 0 and 1")
	case c.History.Size <= 0:
		return errors.New("history.size must be positive")
	case c.Export.Padding < 0:
		return errors.New("export.padding must not be negative")
	case c.Export.LineWidth <= 0:
		return errors.New("export.line_width must be positive")
	}
	return nil
}

// Tolerances returns the hit-test settings.
func (c *Config) Tolerances() geometry.Tolerances {
	return geometry.Tolerances{
		EdgeThreshold: c.Geometry.EdgeThreshold,
		EdgeSnap:      c.Geometry.EdgeSnap,
		EdgeRatio:     c.Geometry.EdgeRatio,
	}
}

// Sizer builds the node sizer, measuring labels with the Go Regular font.
func (c *Config) Sizer() (*geometry.Sizer, error) {
	m, err := geometry.NewFontMeasurer(c.Geometry.FontSize)
	if err != nil {
		return nil, err
	}
	return geometry.NewSizer(m,
		geometry.WithMinRadius(c.Geometry.MinRadius),
		geometry.WithPadding(c.Geometry.Padding),
		geometry.WithTextHeight(c.Geometry.FontSize),
	), nil
}
