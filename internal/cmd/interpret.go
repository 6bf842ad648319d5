package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/stellium/internal/chart"
	"github.com/harrison/stellium/internal/config"
	"github.com/harrison/stellium/internal/display"
	"github.com/harrison/stellium/internal/ephemeris"
	"github.com/harrison/stellium/internal/fileutil"
	"github.com/harrison/stellium/internal/interpret"
	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
	"github.com/harrison/stellium/internal/report"
)

// NewInterpretCommand creates and returns the interpret subcommand
func NewInterpretCommand() *cobra.Command {
	var (
		level   string
		outDir  string
		htmlOut bool
		demo    bool
	)

	cmd := &cobra.Command{
		Use:   "interpret [chart-file-or-directory]",
		Short: "Interpret one or more natal charts",
		Long: `Run the full interpretation pipeline over chart data.

Accepts a single chart file (JSON or YAML), or a directory that is
scanned recursively for chart files. With --demo the built-in sample
chart is interpreted instead.

By default the interpretation is printed to the terminal. With --out a
markdown report is written per chart; --html additionally writes an
HTML rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpret(cmd, args, level, outDir, htmlOut, demo)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "interpretation level: basic or full (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write markdown reports to this directory")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "also write HTML reports (requires --out)")
	cmd.Flags().BoolVar(&demo, "demo", false, "interpret the built-in demo chart")

	return cmd
}

func runInterpret(cmd *cobra.Command, args []string, level, outDir string, htmlOut, demo bool) error {
	cfg, log, closeLog, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if level == "" {
		level = cfg.Level
	}
	if level != "basic" && level != "full" {
		return fmt.Errorf("invalid level %q: must be basic or full", level)
	}
	if htmlOut && outDir == "" {
		outDir = cfg.Report.Dir
	}

	charts, err := collectCharts(args, demo, log)
	if err != nil {
		return err
	}

	engine := interpret.NewEngine(knowledge.NewStore(cfg.DataDir, log), log)
	renderer := display.NewRenderer(cmd.OutOrStdout())

	var writer *report.Writer
	if outDir != "" {
		writer = report.NewWriter(outDir, log)
	}

	failed := 0
	for i, c := range charts {
		result := engine.Interpret(c.chart, level)
		if !result.Success {
			failed++
		}

		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if c.source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n", c.source)
		}
		renderer.Render(result)

		if writer != nil && result.Success {
			if _, err := writer.WriteMarkdown(result); err != nil {
				return err
			}
			if htmlOut || cfg.Report.HTML {
				if _, err := writer.WriteHTML(result); err != nil {
					return err
				}
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed to interpret", failed, len(charts))
	}
	return nil
}

// sourcedChart pairs a chart with the path it came from, empty for the
// demo chart.
type sourcedChart struct {
	source string
	chart  *models.Chart
}

// collectCharts resolves the command arguments into parsed charts.
func collectCharts(args []string, demo bool, log logger.Logger) ([]sourcedChart, error) {
	if demo {
		return []sourcedChart{{chart: ephemeris.DemoChart()}}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("provide a chart file or directory, or use --demo")
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing %s: %w", path, err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fileutil.FindChartFiles(path)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no chart files found in %s", path)
		}
	}

	charts := make([]sourcedChart, 0, len(paths))
	for _, p := range paths {
		c, err := chart.ParseFile(p)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		log.Debugf("cmd: loaded chart %s with %d planets", p, len(c.Planets))
		charts = append(charts, sourcedChart{source: p, chart: c})
	}
	return charts, nil
}

// loadEnvironment loads the config and builds the logger every
// subcommand shares: console output plus a run log file when the log
// directory is writable. The returned closer flushes the run log.
func loadEnvironment(cmd *cobra.Command) (*config.Config, logger.Logger, func(), error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, nil, nil, err
	}

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	file, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		console.Warnf("cmd: file logging disabled: %v", err)
		return cfg, console, func() {}, nil
	}

	return cfg, logger.Multi(console, file), func() { file.Close() }, nil
}
