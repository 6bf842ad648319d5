// Package report renders interpretation results to markdown and HTML
// files on disk.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/stellium/internal/filelock"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// Writer renders results into a report directory. Writes go through the
// file lock so concurrent runs never interleave output.
type Writer struct {
	dir      string
	markdown goldmark.Markdown
	log      logger.Logger
}

// NewWriter creates a Writer targeting dir. A nil log defaults to the
// no-op logger.
func NewWriter(dir string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Writer{
		dir:      dir,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		log:      log,
	}
}

// WriteMarkdown renders the result to a markdown report file and
// returns its path.
func (w *Writer) WriteMarkdown(result models.InterpretationResult) (string, error) {
	path := filepath.Join(w.dir, fileName(result, "md"))
	if err := filelock.LockAndWrite(path, Markdown(result)); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}
	w.log.Infof("report: wrote %s", path)
	return path, nil
}

// WriteHTML renders the result to an HTML report file and returns its
// path.
func (w *Writer) WriteHTML(result models.InterpretationResult) (string, error) {
	html, err := w.HTML(result)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, fileName(result, "html"))
	if err := filelock.LockAndWrite(path, html); err != nil {
		return "", fmt.Errorf("writing HTML report: %w", err)
	}
	w.log.Infof("report: wrote %s", path)
	return path, nil
}

// HTML renders the result's markdown through goldmark into a standalone
// HTML page.
func (w *Writer) HTML(result models.InterpretationResult) ([]byte, error) {
	var body bytes.Buffer
	if err := w.markdown.Convert(Markdown(result), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>Natal Chart Interpretation</title>\n")
	page.WriteString("<style>\nbody { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.6; }\nh1, h2 { font-family: Helvetica, Arial, sans-serif; }\n</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Markdown renders the result as a markdown document: title, run
// metadata, then every section in display order.
func Markdown(result models.InterpretationResult) []byte {
	var b strings.Builder

	b.WriteString("# Natal Chart Interpretation\n\n")
	fmt.Fprintf(&b, "_Generated %s · run %s · level %s_\n",
		result.GeneratedAt.Format(time.RFC3339), result.RunID, result.Level)

	if !result.Success {
		fmt.Fprintf(&b, "\n**Interpretation failed:** %s\n", result.Error)
		return []byte(b.String())
	}

	for _, key := range result.DisplayOrder {
		section, ok := result.Sections[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
		if section.Content != "" {
			b.WriteString(section.Content)
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

// fileName builds interpretation-<short run id>.<ext>; a result without
// a run ID falls back to a timestamp.
func fileName(result models.InterpretationResult, ext string) string {
	id := result.RunID
	if len(id) >= 8 {
		id = id[:8]
	}
	if id == "" {
		id = result.GeneratedAt.Format("20060102-150405")
	}
	return fmt.Sprintf("interpretation-%s.%s", id, ext)
}
