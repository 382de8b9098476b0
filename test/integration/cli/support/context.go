package support

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/panoroll/internal/testutil"
)

// TestContext holds the state for integration tests.
type TestContext struct {
	// Command execution state
	LastCommand   string
	LastOutput    string
	LastError     error
	LastExitCode  int
	LastStartTime time.Time
	LastDuration  time.Duration

	// Test environment
	WorkingDir string
	TempDir    string
	InputDir   string
	OutputDir  string
	EnvVars    []string

	// Test artifacts
	CreatedFiles []string
}

// NewTestContext creates a new test context rooted at the project directory,
// with fresh input and output directories under a scenario-private temp dir.
func NewTestContext() (*TestContext, error) {
	workingDir, err := testutil.GetProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to locate project root: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "panoroll-cli-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	inputDir := filepath.Join(tempDir, "input")
	outputDir := filepath.Join(tempDir, "output")
	for _, dir := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return &TestContext{
		WorkingDir: workingDir,
		TempDir:    tempDir,
		InputDir:   inputDir,
		OutputDir:  outputDir,
	}, nil
}

// Cleanup removes every artifact the scenario created.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.TempDir != "" {
		if err := os.RemoveAll(testCtx.TempDir); err != nil {
			return fmt.Errorf("failed to remove temp directory: %w", err)
		}
	}
	return nil
}

// AddEnvVar adds an environment variable for subsequent command executions.
func (testCtx *TestContext) AddEnvVar(name, value string) {
	testCtx.EnvVars = append(testCtx.EnvVars, name+"="+value)
}

// TrackFile records a file created during the scenario.
func (testCtx *TestContext) TrackFile(filename string) {
	testCtx.CreatedFiles = append(testCtx.CreatedFiles, filename)
}

// BinaryPath returns the path of the CLI binary built by TestMain.
func (testCtx *TestContext) BinaryPath() string {
	return filepath.Join(testCtx.WorkingDir, "bin", "panoroll")
}
