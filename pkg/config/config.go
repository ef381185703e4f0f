package config

import (
	"github.com/sdejongh/dupenorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	// MaxWorkers is the number of parallel hashing workers (0 = one per CPU)
	MaxWorkers int `yaml:"max_workers"`
	// BufferSize is the per-worker read buffer size in bytes
	BufferSize int `yaml:"buffer_size"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Progress       bool   `yaml:"progress"`        // Show progress bars while indexing
	Color          bool   `yaml:"color"`           // Colorize console output
	Quiet          bool   `yaml:"quiet"`           // Suppress non-error output
	DuplicatesFile string `yaml:"duplicates_file"` // Destination for the duplicate path list
	UniquesFile    string `yaml:"uniques_file"`    // Destination for the unique path list
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Performance: PerformanceConfig{
			MaxWorkers: 0,
			BufferSize: 65536,
		},
		Output: OutputConfig{
			Progress:       true,
			Color:          true,
			Quiet:          false,
			DuplicatesFile: "BSame_files.txt",
			UniquesFile:    "BUnique_files.txt",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Performance.MaxWorkers < 0 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must not be negative (0 = one worker per CPU)",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Output.DuplicatesFile == "" {
		return &models.ValidationError{
			Field:   "output.duplicates_file",
			Message: "must not be empty",
		}
	}

	if c.Output.UniquesFile == "" {
		return &models.ValidationError{
			Field:   "output.uniques_file",
			Message: "must not be empty",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
