package graph

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/bundle"
	"github.com/pybundle/pybundle/cmd/graph/formatters"
	"github.com/pybundle/pybundle/depgraph"
	"github.com/pybundle/pybundle/internal/logging"
	"github.com/pybundle/pybundle/project"
)

var outputFormat string
var rootOverride string
var label string

// GraphCmd represents the graph command
var GraphCmd = &cobra.Command{
	Use:   "graph <entry.py>",
	Short: "Print the discovered dependency graph.",
	Long: `Print the dependency graph reachable from the entry file.

Files on an import cycle are highlighted.

Examples:
  pybundle graph main.py                  # Graphviz DOT
  pybundle graph main.py --format mermaid
  pybundle graph main.py --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Default()

		formatter, err := formatters.NewFormatter(outputFormat)
		if err != nil {
			return err
		}

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

		annotated, err := depgraph.NewAnnotatedGraph(analysis.Graph)
		if err != nil {
			return fmt.Errorf("failed to annotate graph: %w", err)
		}

		output, err := formatter.Format(annotated, formatters.FormatOptions{Label: label})
		if err != nil {
			return fmt.Errorf("failed to format graph: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	GraphCmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot, mermaid, or json")
	GraphCmd.Flags().StringVarP(&rootOverride, "root", "r", "", "Project root directory (default: auto-detected)")
	GraphCmd.Flags().StringVarP(&label, "label", "l", "", "Optional graph title")
}
