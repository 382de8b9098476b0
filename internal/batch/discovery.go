package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/panoroll/internal/imageio"
)

// Discover expands the command-line arguments into a deduplicated list of
// image paths, exactly as the rotate pipeline would see them.
func Discover(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	return discoverInputFiles(args, recursive, includePatterns, excludePatterns)
}

// discoverInputFiles expands the command-line arguments into a deduplicated
// list of image paths. Files are taken as-is (if they pass the extension
// allow-list and patterns), directories are scanned. Order is first-seen;
// duplicates by cleaned path are dropped silently here because the Run
// rejects them anyway.
func discoverInputFiles(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(path string) {
		key := filepath.Clean(path)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			found, err := discoverInDirectory(arg, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		} else if shouldIncludeFile(arg, includePatterns, excludePatterns) {
			add(arg)
		}
	}

	return files, nil
}

// discoverInDirectory scans a directory for image files, optionally
// recursing into subdirectories.
func discoverInDirectory(dir string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}

		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}

// shouldIncludeFile applies the extension allow-list first, then the
// user-supplied include/exclude patterns.
func shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if !imageio.IsSupported(path) {
		return false
	}
	if matchesAnyPattern(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAnyPattern(path, includePatterns)
}

// matchesAnyPattern checks the file's base name against glob patterns.
func matchesAnyPattern(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
