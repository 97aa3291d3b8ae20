package project

import (
	"fmt"
	"path/filepath"
)

// Resolve determines the project root for entryFile and loads its config.
// A non-empty rootOverride wins over marker detection. When the config file
// overrides the marker set, the root is located again with those markers.
func Resolve(entryFile, rootOverride string) (string, Config, error) {
	if rootOverride != "" {
		root, err := filepath.Abs(rootOverride)
		if err != nil {
			return "", Config{}, fmt.Errorf("failed to resolve root path %s: %w", rootOverride, err)
		}
		cfg, err := LoadConfig(root)
		return root, cfg, err
	}

	root := LocateRoot(entryFile, nil)
	cfg, err := LoadConfig(root)
	if err != nil {
		return "", Config{}, err
	}

	if len(cfg.RootMarkers) > 0 {
		root = LocateRoot(entryFile, cfg.RootMarkers)
	}

	return root, cfg, nil
}
