package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLoader builds a loader over a private viper instance so tests don't
// pollute the global one the CLI binds flags to.
func newTestLoader() *Loader {
	return &Loader{v: viper.New()}
}

// chdir is t.Chdir for Go toolchains predating testing.T.Chdir (Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panoroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoaderLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray panoroll.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Progress.Show)
}

func TestLoaderLoadWithFile(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
batch:
  workers: 3
  recursive: true
output:
  format: json
progress:
  show: false
  log_interval: 25
`)

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.True(t, cfg.Batch.Recursive)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Progress.Show)
	assert.Equal(t, 25, cfg.Progress.LogInterval)
}

func TestLoaderLoadWithFilePartialOverride(t *testing.T) {
	path := writeConfigFile(t, "log_level: warn\n")

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	// Everything else keeps its default.
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 10, cfg.Progress.LogInterval)
}

func TestLoaderLoadWithFileMissing(t *testing.T) {
	_, err := newTestLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoaderLoadWithFileInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "log_level: [unbalanced\n")

	_, err := newTestLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoaderLoadWithFileFailsValidation(t *testing.T) {
	path := writeConfigFile(t, "log_level: loud\n")

	_, err := newTestLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoaderEnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PANOROLL_LOG_LEVEL", "error")
	t.Setenv("PANOROLL_OUTPUT_FORMAT", "yaml")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoaderEmptyPathUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := newTestLoader().LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoaderGetConfigFileUsed(t *testing.T) {
	path := writeConfigFile(t, "log_level: info\n")

	loader := newTestLoader()
	_, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, loader.GetConfigFileUsed())
}
