package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/pybundle/pybundle/bundle"
	"github.com/pybundle/pybundle/internal/logging"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".tox":          true,
	".idea":         true,
	".vscode":       true,
	"node_modules":  true,
}

func watchAndRebundle(ctx context.Context, opts bundle.Options, logger *charmlog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, opts.ProjectRoot); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, opts.OutputPath) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				logger.Info("change detected", "file", filepath.Base(event.Name))
				if _, err := bundle.Run(ctx, opts, logging.EventSink(logger)); err != nil {
					logger.Error("re-bundle failed", "reason", err)
				}
			})

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

// isRelevantChange filters the event stream down to Python source changes,
// ignoring the bundle's own output and temp files so a write never triggers
// the next rebundle.
func isRelevantChange(event fsnotify.Event, outputPath string) bool {
	if event.Name == outputPath {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".pybundle-") {
		return false
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if filepath.Ext(event.Name) == ".py" {
		return true
	}

	// Directory create/remove changes the watch set and may move modules.
	info, err := os.Stat(event.Name)
	if err == nil && info.IsDir() {
		return true
	}
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if skippedDirs[filepath.Base(path)] {
		return
	}
	watcher.Add(path)
}
