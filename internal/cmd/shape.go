package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/shape"
)

// NewShapeCommand creates and returns the shape subcommand
func NewShapeCommand() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "shape [chart-file]",
		Short: "Classify the overall chart shape",
		Long: `Classify the distribution of planets around the wheel into a chart
shape (Bundle, Bowl, Locomotive, or Splash) from the occupied span and
the largest empty gap.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShape(cmd, args, demo)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "classify the built-in demo chart")

	return cmd
}

func runShape(cmd *cobra.Command, args []string, demo bool) error {
	cfg, log, closeLog, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	charts, err := collectCharts(args, demo, log)
	if err != nil {
		return err
	}

	analyzer := shape.NewAnalyzer(knowledge.NewStore(cfg.DataDir, log), log)

	for _, c := range charts {
		result := analyzer.Analyze(c.chart)
		if c.source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ", c.source)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (span %.1f°, largest gap %.1f°)\n",
			result.Name, result.OccupiedSpan, result.LargestGap)
		if result.Interpretation != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", result.Interpretation)
		}
	}
	return nil
}
