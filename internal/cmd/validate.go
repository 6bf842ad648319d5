package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/stellium/internal/chart"
	"github.com/harrison/stellium/internal/fileutil"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <chart-file-or-directory>...",
		Short: "Validate one or more chart files",
		Long: `Parse and normalize chart files without interpreting them, checking
that each carries the required planets, canonical sign names, and
well-formed houses, angles, and aspects.

Exit code: 0 if all charts are valid, 1 if errors found`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateChartFiles(args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateChartFiles parses every chart file and reports each result.
func validateChartFiles(paths []string, output io.Writer) error {
	files, err := expandChartPaths(paths)
	if err != nil {
		return err
	}

	failures := 0
	for _, file := range files {
		c, err := chart.ParseFile(file)
		if err != nil {
			failures++
			fmt.Fprintf(output, "✗ %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(output, "✓ %s: %d planets, %d houses, %d aspects\n",
			file, len(c.Planets), len(c.Houses), len(c.Aspects))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d chart files failed validation", failures, len(files))
	}
	fmt.Fprintf(output, "\n✓ All %d chart files are valid\n", len(files))
	return nil
}

// expandChartPaths resolves file and directory arguments into a
// deduplicated chart file list.
func expandChartPaths(paths []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fileutil.FindChartFiles(path)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if !seen[f] {
					files = append(files, f)
					seen[f] = true
				}
			}
			continue
		}

		if !seen[path] {
			files = append(files, path)
			seen[path] = true
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no chart files found")
	}
	return files, nil
}
