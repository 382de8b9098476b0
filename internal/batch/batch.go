// Package batch is the rotation pipeline: it fans input files out to a
// bounded worker pool, applies the yaw shift to each, writes results to the
// output directory, and aggregates per-file outcomes into a final summary.
// A single file failing never aborts the batch.
package batch

import (
	"errors"
	"fmt"
	"log/slog"
)

// Process discovers the input files named by args and runs them through the
// rotation pipeline with the given configuration.
func Process(args []string, config *Config, sink ProgressSink) (*Result, error) {
	files, err := discoverInputFiles(args, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}

	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	run := NewRun(config.Angle, config.OutputDir)
	if added := run.AddAll(files); added < len(files) {
		// Discovery already dedupes, so this only fires when args alias
		// the same file through different spellings.
		slog.Debug("dropped duplicate inputs", "dropped", len(files)-added)
	}

	dispatcher := NewDispatcher(config.Workers)
	summary, err := dispatcher.Run(run, sink)
	if err != nil {
		return nil, err
	}

	return &Result{
		Summary:    summary,
		InputPaths: run.Inputs(),
	}, nil
}
