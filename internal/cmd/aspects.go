package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/stellium/internal/compose"
	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/pattern"
)

// NewAspectsCommand creates and returns the aspects subcommand
func NewAspectsCommand() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "aspects [chart-file]",
		Short: "Interpret a chart's aspects and aspect patterns",
		Long: `List the interpretation of every recognized aspect in a chart,
followed by any major configurations (T-Squares, Yods, Grand Trines,
Grand Crosses) the aspects form. Aspects of unknown type are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAspects(cmd, args, demo)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "interpret the built-in demo chart")

	return cmd
}

func runAspects(cmd *cobra.Command, args []string, demo bool) error {
	cfg, log, closeLog, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	charts, err := collectCharts(args, demo, log)
	if err != nil {
		return err
	}

	store := knowledge.NewStore(cfg.DataDir, log)
	composer := compose.NewComposer(store, log)
	detector := pattern.NewComplexDetector(store, log)
	out := cmd.OutOrStdout()

	for i, c := range charts {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if c.source != "" {
			fmt.Fprintf(out, "=== %s ===\n", c.source)
		}

		if len(c.chart.Aspects) == 0 {
			fmt.Fprintln(out, "No aspects in chart data.")
			continue
		}

		for _, a := range c.chart.Aspects {
			text, ok := composer.Aspect(c.chart, a)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "- %s\n", text)
		}

		for _, p := range detector.Detect(c.chart) {
			fmt.Fprintf(out, "\n%s\n", p.Interpretation)
		}
	}
	return nil
}
