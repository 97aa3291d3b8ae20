package order

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/bundle"
	"github.com/pybundle/pybundle/internal/logging"
	"github.com/pybundle/pybundle/project"
)

var rootOverride string

// OrderCmd prints the computed bundling order without writing a bundle.
var OrderCmd = &cobra.Command{
	Use:   "order <entry.py>",
	Short: "Print the bundling order, one file per line.",
	Long: `Print the bundling order, one file per line, relative to the
detected project root. Dependencies come first; the entry file is last.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Default()

		root, cfg, err := project.Resolve(args[0], rootOverride)
		if err != nil {
			return err
		}

		analysis, err := bundle.Analyze(cmd.Context(), bundle.Options{
			EntryFile:      args[0],
			ProjectRoot:    root,
			ExcludeModules: cfg.ExcludeModules,
		}, logging.EventSink(logger))
		if err != nil {
			return err
		}

		for _, file := range analysis.Ordering {
			rel, err := filepath.Rel(root, file)
			if err != nil {
				rel = file
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.ToSlash(rel))
		}
		return nil
	},
}

func init() {
	OrderCmd.Flags().StringVarP(&rootOverride, "root", "r", "", "Project root directory (default: auto-detected)")
}
