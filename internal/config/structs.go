package config

// Config represents the complete configuration for the panoroll application.
// It supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Summary output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Progress reporting configuration
	Progress ProgressConfig `mapstructure:"progress" yaml:"progress" json:"progress"`
}

// BatchConfig contains batch rotation settings.
type BatchConfig struct {
	// Workers is the degree of parallelism; 0 means one worker per CPU.
	Workers   int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`
	Recursive bool   `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
}

// OutputConfig contains summary output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ProgressConfig contains progress reporting settings.
type ProgressConfig struct {
	Show  bool `mapstructure:"show" yaml:"show" json:"show"`
	Quiet bool `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
	Stats bool `mapstructure:"stats" yaml:"stats" json:"stats"`
	// LogInterval logs a progress line every N finished files when the
	// console bar is disabled.
	LogInterval int `mapstructure:"log_interval" yaml:"log_interval" json:"log_interval"`
}
