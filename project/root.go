// Package project locates the project root and loads optional per-project
// configuration. The root is the boundary between local modules, which the
// bundler follows, and external ones, which it drops.
package project

import (
	"os"
	"path/filepath"
)

// DefaultRootMarkers are the files and directories whose presence marks a
// project root.
var DefaultRootMarkers = []string{
	".git",
	"pyproject.toml",
	"setup.py",
	"setup.cfg",
	"requirements.txt",
	".project_root",
}

// LocateRoot walks upward from the entry file's directory looking for one of
// the marker entries. It never fails: when no marker exists below the
// filesystem root it falls back to the entry file's own directory, degrading
// to a project of just that folder.
func LocateRoot(entryFile string, markers []string) string {
	start, err := filepath.Abs(entryFile)
	if err != nil {
		start = filepath.Clean(entryFile)
	}
	startDir := filepath.Dir(start)

	if len(markers) == 0 {
		markers = DefaultRootMarkers
	}

	dir := startDir
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}
