package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("planets: {}"), 0644))
}

func TestIsChartFile(t *testing.T) {
	assert.True(t, IsChartFile("chart.json"))
	assert.True(t, IsChartFile("chart.yaml"))
	assert.True(t, IsChartFile("chart.YML"))
	assert.False(t, IsChartFile("chart.txt"))
	assert.False(t, IsChartFile("chart"))
}

func TestFindChartFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"))
	writeFile(t, filepath.Join(dir, "a.json"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "nested", "c.yml"))
	writeFile(t, filepath.Join(dir, ".hidden", "d.json"))

	files, err := FindChartFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 3)
	// Sorted by path, hidden directory skipped
	assert.Equal(t, filepath.Join(dir, "a.json"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.yaml"), files[1])
	assert.Equal(t, filepath.Join(dir, "nested", "c.yml"), files[2])
}

func TestFindChartFilesNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	writeFile(t, path)

	_, err := FindChartFiles(path)
	assert.Error(t, err)
}

func TestFindChartFilesMissing(t *testing.T) {
	_, err := FindChartFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
