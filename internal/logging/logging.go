// Package logging configures the CLI logger and renders pipeline events as
// log lines.
package logging

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pybundle/pybundle/depgraph"
)

var defaultLogger = log.Default()

// SetDefault replaces the process-wide logger the commands write through.
func SetDefault(l *log.Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	return defaultLogger
}

// NewLogger creates a logger with timestamp formatting, writing to w and
// filtering at level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// EventSink renders pipeline events through logger: progress at info,
// unresolved imports and cycles at warn, parse failures at error.
func EventSink(logger *log.Logger) depgraph.EventSink {
	return func(e depgraph.Event) {
		switch ev := e.(type) {
		case depgraph.Discovered:
			logger.Debug("discovered", "file", ev.File)
		case depgraph.ParseError:
			if ev.Line > 0 {
				logger.Error("parse error", "file", ev.File, "line", ev.Line, "msg", ev.Message)
			} else {
				logger.Error("read error", "file", ev.File, "msg", ev.Message)
			}
		case depgraph.UnresolvedImport:
			logger.Warn("unresolved import", "file", filepath.Base(ev.File), "import", ev.Reference)
		case depgraph.CycleDetected:
			logger.Warn("circular dependency", "files", ev.Files)
		case depgraph.Completed:
			logger.Info("bundle written", "output", ev.OutputPath)
		case depgraph.Failed:
			logger.Error("bundling failed", "reason", ev.Reason)
		}
	}
}
