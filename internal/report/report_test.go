package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stellium/internal/models"
)

func sampleResult() models.InterpretationResult {
	return models.InterpretationResult{
		Success:     true,
		RunID:       "0b51f2e4-9c1d-4a7e-8f3b-2d6c1e0a9b84",
		Level:       "full",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Sections: map[string]models.Section{
			models.SectionOverview: {
				Title:   "Overview",
				Content: "This chart carries Sun in Leo, Moon in Cancer.",
			},
			models.SectionChartShape: {
				Title:   "Chart Shape",
				Content: "**Bowl**: planets span 170.0° with a 190.0° gap.",
			},
		},
		DisplayOrder: []string{models.SectionOverview, models.SectionChartShape},
	}
}

func TestMarkdownLayout(t *testing.T) {
	md := string(Markdown(sampleResult()))

	assert.True(t, strings.HasPrefix(md, "# Natal Chart Interpretation\n"))
	assert.Contains(t, md, "run 0b51f2e4-9c1d-4a7e-8f3b-2d6c1e0a9b84")
	assert.Contains(t, md, "2026-03-14T09:30:00Z")

	// Sections render as level-two headings in display order
	overview := strings.Index(md, "## Overview")
	shape := strings.Index(md, "## Chart Shape")
	require.GreaterOrEqual(t, overview, 0)
	require.GreaterOrEqual(t, shape, 0)
	assert.Less(t, overview, shape)
}

func TestMarkdownFailedResult(t *testing.T) {
	result := models.InterpretationResult{
		Success:     false,
		RunID:       "deadbeef",
		Error:       "missing planets",
		GeneratedAt: time.Now().UTC(),
	}

	md := string(Markdown(result))
	assert.Contains(t, md, "Interpretation failed")
	assert.Contains(t, md, "missing planets")
	assert.NotContains(t, md, "##")
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	path, err := w.WriteMarkdown(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "interpretation-0b51f2e4.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Overview")
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	path, err := w.WriteHTML(sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "interpretation-0b51f2e4.html"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<h2>Overview</h2>")
	// Bold markdown renders through
	assert.Contains(t, html, "<strong>Bowl</strong>")
}

func TestWriteMarkdownCreatesReportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewWriter(dir, nil)

	_, err := w.WriteMarkdown(sampleResult())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
