package batch

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for a batch rotation run.
type Config struct {
	// Rotation settings
	Angle     float64
	OutputDir string

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Progress settings
	ShowProgress bool
	Quiet        bool
	ShowStats    bool

	// Summary output settings
	Format     string
	OutputFile string
}

// Result pairs the run summary with the paths that were processed.
type Result struct {
	Summary    *Summary
	InputPaths []string
}

// FormatSummary renders the summary in the requested format.
func (r *Result) FormatSummary(format string) (string, error) {
	return formatSummary(r.Summary, format)
}

// SaveSummary writes the formatted summary to a file or stdout.
func (r *Result) SaveSummary(format, outputFile string, quiet bool) error {
	output, err := r.FormatSummary(format)
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Summary written to %s\n", outputFile)
		}
	} else if !quiet {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics to stdout.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	s := r.Summary
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total images: %d\n", s.Total)
	_, _ = fmt.Fprintf(os.Stdout, "  Completed: %d\n", s.Completed)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", s.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", s.Workers)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", s.Duration.Round(time.Millisecond))
	if s.Completed > 0 && s.Duration > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "  Avg per image: %v\n",
			(s.Duration / time.Duration(s.Completed)).Round(time.Millisecond))
		_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f images/sec\n",
			float64(s.Completed)/s.Duration.Seconds())
	}
}
