package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/MeKo-Tech/panoroll/internal/batch"
	"github.com/MeKo-Tech/panoroll/internal/imageio"
	"github.com/spf13/cobra"
)

// listCmd shows what a rotate invocation with the same arguments would
// process, with the decoded dimensions and container format of each input.
var listCmd = &cobra.Command{
	Use:   "list [files|dirs...]",
	Short: "List the images a rotate run would process",
	Long: `Resolve the given files and directories exactly as the rotate command
would and print each input with its dimensions and container format.
Files that fail to decode are listed with the error instead.

Examples:
  panoroll list shoots/
  panoroll list shoots/ --recursive --exclude 'thumb_*'`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runListCommand,
}

func runListCommand(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	files, err := batch.Discover(args, recursive, include, exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found")
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tSIZE\tFORMAT")
	for _, path := range files {
		_, meta, err := imageio.Decode(path)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s\t-\tunreadable: %v\n", path, err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%dx%d\t%s\n", path, meta.Width, meta.Height, meta.Format)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	listCmd.Flags().StringSlice("include", nil, "file patterns to include (e.g. '*.jpg')")
	listCmd.Flags().StringSlice("exclude", nil, "file patterns to exclude")
}
