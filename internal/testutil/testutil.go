// Package testutil provides synthetic panorama fixtures and filesystem
// helpers shared by the test suites.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GetProjectRoot returns the project root directory by finding go.mod.
func GetProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to get caller information")
	}
	dir := filepath.Dir(filename)

	// Walk up the directory tree to find go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find go.mod file starting from %s", filepath.Dir(filename))
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return !os.IsNotExist(err) && info.IsDir()
}

// MakeOutputDir creates a fresh output directory under the test's temp dir.
func MakeOutputDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create output dir: %v", err)
	}
	return dir
}
