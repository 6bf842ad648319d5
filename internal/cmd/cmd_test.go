package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChartYAML = `planets:
  sun:
    sign: capricorn
    degree: 280.5
    house: 10
  moon:
    sign: cancer
    degree: 102.3
    house: 4
  mars:
    sign: aries
    degree: 12.4
    house: 1
aspects:
  - planet1: sun
    planet2: moon
    type: opposition
    orb: 1.8
`

func writeChart(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func runInTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"interpret", "shape", "aspects", "validate"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestInterpretDemo(t *testing.T) {
	runInTempDir(t)

	out, _, err := execute(t, "interpret", "--demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Natal Chart Interpretation")
	assert.Contains(t, out, "Overview")
	// The demo chart's capricorn stellium surfaces
	assert.Contains(t, out, "Capricorn")
	// Mercury is retrograde in the demo chart
	assert.Contains(t, out, "Retrograde Planets")
}

func TestInterpretChartFile(t *testing.T) {
	dir := runInTempDir(t)
	path := writeChart(t, dir, "chart.yaml", validChartYAML)

	out, _, err := execute(t, "interpret", path, "--level", "basic")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun in Capricorn")
}

func TestInterpretInvalidLevel(t *testing.T) {
	runInTempDir(t)

	_, _, err := execute(t, "interpret", "--demo", "--level", "verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")
}

func TestInterpretMissingArgs(t *testing.T) {
	runInTempDir(t)

	_, _, err := execute(t, "interpret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--demo")
}

func TestInterpretWritesReport(t *testing.T) {
	dir := runInTempDir(t)
	reportDir := filepath.Join(dir, "reports")

	_, _, err := execute(t, "interpret", "--demo", "--out", reportDir, "--html")
	require.NoError(t, err)

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)

	var md, html bool
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".md":
			md = true
		case ".html":
			html = true
		}
	}
	assert.True(t, md, "markdown report missing")
	assert.True(t, html, "HTML report missing")
}

func TestInterpretDirectory(t *testing.T) {
	dir := runInTempDir(t)
	charts := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(charts, 0755))
	writeChart(t, charts, "a.yaml", validChartYAML)
	writeChart(t, charts, "b.yaml", validChartYAML)

	out, _, err := execute(t, "interpret", charts)
	require.NoError(t, err)
	assert.Contains(t, out, "a.yaml")
	assert.Contains(t, out, "b.yaml")
}

func TestShapeDemo(t *testing.T) {
	runInTempDir(t)

	out, _, err := execute(t, "shape", "--demo")
	require.NoError(t, err)
	assert.Contains(t, out, "span")
	assert.Contains(t, out, "gap")
}

func TestAspectsDemo(t *testing.T) {
	runInTempDir(t)

	out, _, err := execute(t, "aspects", "--demo")
	require.NoError(t, err)
	// The demo chart's sun-moon opposition has a specific pair text
	assert.Contains(t, out, "Sun opposite Moon")
}

func TestValidateValidChart(t *testing.T) {
	dir := runInTempDir(t)
	path := writeChart(t, dir, "chart.yaml", validChartYAML)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "All 1 chart files are valid")
}

func TestValidateInvalidChart(t *testing.T) {
	dir := runInTempDir(t)
	valid := writeChart(t, dir, "good.yaml", validChartYAML)
	invalid := writeChart(t, dir, "bad.yaml", "planets:\n  sun:\n    sign: nonsense\n")

	out, _, err := execute(t, "validate", valid, invalid)
	require.Error(t, err)
	assert.Contains(t, out, "✗")
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestValidateDirectory(t *testing.T) {
	dir := runInTempDir(t)
	writeChart(t, dir, "chart.yaml", validChartYAML)

	out, _, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "chart.yaml")
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stellium")
}
