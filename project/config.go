package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the per-project configuration file, looked up at the
// project root.
const ConfigFileName = ".pybundle.toml"

// Config is the optional per-project configuration.
type Config struct {
	// RootMarkers overrides the marker set used by LocateRoot.
	RootMarkers []string `toml:"root_markers"`
	// ExcludeModules lists additional top-level module names to treat as
	// non-local, on top of the standard library set.
	ExcludeModules []string `toml:"exclude_modules"`
	// Output is the default bundle output path, relative to the project root
	// unless absolute.
	Output string `toml:"output"`
}

// LoadConfig reads .pybundle.toml from dir. A missing file yields the zero
// Config; a malformed one is an error.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}
