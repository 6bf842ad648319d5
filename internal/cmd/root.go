package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for stellium
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stellium",
		Short: "Natal chart interpretation engine",
		Long: `Stellium turns computed natal chart data into a structured written
interpretation.

It reads chart files (JSON or YAML), analyzes element and modality
balance, detects stelliums and major aspect patterns, classifies the
chart shape, and composes the findings into ordered report sections.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewInterpretCommand())
	cmd.AddCommand(NewShapeCommand())
	cmd.AddCommand(NewAspectsCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
