// Package fileutil locates chart data files on disk.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// chartExtensions are the file types the chart parser accepts.
var chartExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// IsChartFile reports whether the path carries a chart data extension.
func IsChartFile(path string) bool {
	return chartExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindChartFiles returns the chart data files under dir, sorted by
// path. Hidden directories are skipped; the walk is recursive.
func FindChartFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsChartFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
