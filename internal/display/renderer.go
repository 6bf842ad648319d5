// Package display renders interpretation results for the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/stellium/internal/models"
)

// Renderer writes an interpretation to a terminal, with color when the
// destination supports it.
type Renderer struct {
	out      io.Writer
	colorize bool
}

// NewRenderer creates a Renderer for out, enabling color only when out
// is a terminal.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, colorize: isTerminal(out)}
}

// NewPlainRenderer creates a Renderer that never emits color codes.
func NewPlainRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func isTerminal(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes the full interpretation: header, then each section in
// display order.
func (r *Renderer) Render(result models.InterpretationResult) {
	if !result.Success {
		fmt.Fprintf(r.out, "%s %s\n", r.paint("Interpretation failed:", color.FgRed, color.Bold), result.Error)
		return
	}

	fmt.Fprintln(r.out, r.paint("Natal Chart Interpretation", color.FgCyan, color.Bold))
	fmt.Fprintf(r.out, "%s\n\n", r.paint(fmt.Sprintf("run %s · level %s", result.RunID, result.Level), color.Faint))

	for i, key := range result.DisplayOrder {
		section, ok := result.Sections[key]
		if !ok {
			continue
		}
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, r.paint(section.Title, color.FgYellow, color.Bold))
		if section.Content != "" {
			fmt.Fprintln(r.out, strings.TrimRight(section.Content, "\n"))
		}
	}
}

func (r *Renderer) paint(text string, attrs ...color.Attribute) string {
	if !r.colorize {
		return text
	}
	return color.New(attrs...).Sprint(text)
}
