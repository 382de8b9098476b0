package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/MeKo-Tech/panoroll/internal/batch"
	"github.com/MeKo-Tech/panoroll/internal/config"
	"github.com/spf13/cobra"
)

// rotateCmd represents the rotate command for parallel panorama rotation.
var rotateCmd = &cobra.Command{
	Use:   "rotate [files|dirs...]",
	Short: "Rotate panoramas by a yaw angle in parallel",
	Long: `Rotate one or more equirectangular panoramas by a horizontal (yaw) angle
and write the results to the output directory.

The rotation is a circular pixel shift: content leaving one edge reappears at
the other, and the vertical axis is untouched. Each output keeps the input's
base filename and container format; inputs from different directories that
share a filename overwrite each other in the output directory.

A file that fails to decode or encode is reported and skipped; the rest of
the batch always runs to completion.

Examples:
  panoroll rotate pano.jpg --angle 90 --output-dir out/
  panoroll rotate shoots/ --recursive --angle -45 --output-dir out/ --workers 8
  panoroll rotate *.png --angle 180 --output-dir out/ --format json --output summary.json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRotateCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{}

	batchConfig.Angle, _ = cmd.Flags().GetFloat64("angle")

	batchConfig.OutputDir = cfg.Batch.OutputDir
	if cmd.Flags().Changed("output-dir") {
		batchConfig.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}

	batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

	batchConfig.ShowProgress = cfg.Progress.Show
	if cmd.Flags().Changed("progress") {
		batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	}

	batchConfig.Quiet = cfg.Progress.Quiet
	if cmd.Flags().Changed("quiet") {
		batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	}

	batchConfig.ShowStats = cfg.Progress.Stats
	if cmd.Flags().Changed("stats") {
		batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")
	}

	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}

	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	return batchConfig
}

// buildSink assembles the progress sink for a run: structured logging always,
// a console bar when progress display is enabled.
func buildSink(cfg *config.Config, batchConfig *batch.Config) batch.ProgressSink {
	logSink := batch.NewLogSink(slog.Default(), slog.LevelDebug)
	logSink.Interval = cfg.Progress.LogInterval

	if !batchConfig.ShowProgress || batchConfig.Quiet {
		return logSink
	}
	return batch.NewMultiSink(logSink, newBarSink("rotating"))
}

func runRotateCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	if batchConfig.OutputDir == "" {
		return fmt.Errorf("--output-dir is required")
	}

	result, err := batch.Process(args, batchConfig, buildSink(cfg, batchConfig))
	if err != nil {
		return fmt.Errorf("batch rotation failed: %w", err)
	}

	if err := result.SaveSummary(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	// A run with zero successes still completes normally; surface it loudly
	// but do not fail the command.
	if result.Summary.Completed == 0 {
		slog.Warn("no files were rotated successfully", "failed", result.Summary.Failed)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(rotateCmd)

	// Rotation flags
	rotateCmd.Flags().Float64("angle", 0, "yaw rotation angle in degrees (negative rotates left)")
	rotateCmd.Flags().StringP("output-dir", "d", "", "directory to write rotated images (must exist)")
	_ = rotateCmd.MarkFlagRequired("angle")

	// Parallel processing flags
	rotateCmd.Flags().IntP("workers", "w", 0,
		fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))

	// File discovery flags
	rotateCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	rotateCmd.Flags().StringSlice("include", nil, "file patterns to include (e.g. '*.jpg')")
	rotateCmd.Flags().StringSlice("exclude", nil, "file patterns to exclude")

	// Progress and output flags
	rotateCmd.Flags().Bool("progress", true, "show progress bar")
	rotateCmd.Flags().BoolP("quiet", "q", false, "suppress progress and summary output")
	rotateCmd.Flags().Bool("stats", false, "show processing statistics")
	rotateCmd.Flags().StringP("format", "f", "text", "summary format: text, json, yaml")
	rotateCmd.Flags().StringP("output", "o", "", "summary file (default: stdout)")
}
