package watch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/bundle"
	"github.com/pybundle/pybundle/internal/logging"
	"github.com/pybundle/pybundle/project"
)

var outputPath string
var rootOverride string

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch <entry.py>",
	Short: "Re-bundle whenever project files change.",
	Long: `Bundle once, then watch the project root and re-bundle on changes
to Python files. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Default()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		root, cfg, err := project.Resolve(args[0], rootOverride)
		if err != nil {
			return err
		}

		out := outputPath
		if out == "" {
			out = cfg.Output
		}
		if out == "" {
			out = "combined_output.txt"
		}
		if !filepath.IsAbs(out) {
			out, err = filepath.Abs(out)
			if err != nil {
				return fmt.Errorf("failed to resolve output path: %w", err)
			}
		}

		opts := bundle.Options{
			EntryFile:      args[0],
			OutputPath:     out,
			ProjectRoot:    root,
			ExcludeModules: cfg.ExcludeModules,
		}

		// Initial bundle before watching; a broken first run is not fatal,
		// the next change gets another chance.
		if _, err := bundle.Run(ctx, opts, logging.EventSink(logger)); err != nil {
			logger.Error("initial bundle failed", "reason", err)
		}

		logger.Info("watching", "root", root)
		return watchAndRebundle(ctx, opts, logger)
	},
}

func init() {
	WatchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default combined_output.txt)")
	WatchCmd.Flags().StringVarP(&rootOverride, "root", "r", "", "Project root directory (default: auto-detected)")
}
