package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "panoroll"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "PANOROLL"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Use the global viper instance to ensure flag bindings work
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and defaults,
// and validates the result.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// addConfigPaths registers the configuration search paths.
func (l *Loader) addConfigPaths() {
	// Current directory
	l.v.AddConfigPath(".")

	// User's home directory
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	// System-wide configuration
	l.v.AddConfigPath("/etc/panoroll")

	// XDG config directory
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "panoroll"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "panoroll"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("batch.workers", defaults.Batch.Workers)
	l.v.SetDefault("batch.output_dir", defaults.Batch.OutputDir)
	l.v.SetDefault("batch.recursive", defaults.Batch.Recursive)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.file", defaults.Output.File)

	l.v.SetDefault("progress.show", defaults.Progress.Show)
	l.v.SetDefault("progress.quiet", defaults.Progress.Quiet)
	l.v.SetDefault("progress.stats", defaults.Progress.Stats)
	l.v.SetDefault("progress.log_interval", defaults.Progress.LogInterval)
}
