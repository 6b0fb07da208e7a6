// Package config handles combinemr configuration loading and management.
package config

import "fmt"

// Config holds all tool settings.
type Config struct {
	Preview PreviewConfig `yaml:"preview"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// PreviewConfig holds preview window settings.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	VSync   bool   `yaml:"vsync"`
	Filter  string `yaml:"filter"` // "nearest" or "linear"
}

// OutputConfig holds settings for writing the packed texture.
type OutputConfig struct {
	Path        string `yaml:"path"`         // Explicit output file
	Save        bool   `yaml:"save"`         // Save next to the metallic map when Path is empty
	JPEGQuality int    `yaml:"jpeg_quality"` // 1-100
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Preview filter names.
const (
	FilterNearest = "nearest"
	FilterLinear  = "linear"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Preview: PreviewConfig{
			Enabled: true,
			Width:   512,
			Height:  512,
			VSync:   true,
			Filter:  FilterNearest,
		},
		Output: OutputConfig{
			JPEGQuality: 95,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	switch c.Preview.Filter {
	case FilterNearest, FilterLinear:
	default:
		return fmt.Errorf("unknown preview filter %q (want %s or %s)", c.Preview.Filter, FilterNearest, FilterLinear)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in 1..100, got %d", c.Output.JPEGQuality)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
