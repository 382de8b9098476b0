package config

import (
	"fmt"
	"strings"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Batch: BatchConfig{
			Workers:   0, // one worker per CPU
			Recursive: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Progress: ProgressConfig{
			Show:        true,
			LogInterval: 10,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Batch.Workers < 0 {
		return fmt.Errorf("invalid batch workers: %d (must not be negative)", c.Batch.Workers)
	}
	if c.Progress.LogInterval < 0 {
		return fmt.Errorf("invalid progress log interval: %d (must not be negative)", c.Progress.LogInterval)
	}

	return nil
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
