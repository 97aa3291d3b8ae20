package bundle

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/bundle"
	"github.com/pybundle/pybundle/internal/logging"
	"github.com/pybundle/pybundle/project"
)

// defaultOutputName is used when neither the --output flag nor the config
// file names an output path.
const defaultOutputName = "combined_output.txt"

var outputPath string
var rootOverride string
var excludeModules []string

// BundleCmd represents the bundle command
var BundleCmd = &cobra.Command{
	Use:   "bundle <entry.py>",
	Short: "Bundle an entry file and its local imports into one text file.",
	Long: `Bundle an entry file and its local imports into one text file.

The project root is auto-detected by walking up from the entry file looking
for markers (.git, pyproject.toml, setup.py, ...); use --root to override.

Examples:
  pybundle bundle main.py
  pybundle bundle main.py -o dist/bundle.txt
  pybundle bundle src/app/main.py --root src`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Default()

		opts, err := resolveOptions(args[0])
		if err != nil {
			return err
		}
		logger.Info("project root", "path", opts.ProjectRoot)

		analysis, err := bundle.Run(cmd.Context(), opts, logging.EventSink(logger))
		if err != nil {
			return err
		}

		logger.Info("bundled", "files", len(analysis.Ordering), "output", opts.OutputPath)
		return nil
	},
}

// resolveOptions merges flags and the project config into run options.
// Precedence for the output path: flag, config file, default name.
func resolveOptions(entryFile string) (bundle.Options, error) {
	root, cfg, err := project.Resolve(entryFile, rootOverride)
	if err != nil {
		return bundle.Options{}, err
	}

	out := outputPath
	if out == "" {
		out = cfg.Output
	}
	if out == "" {
		out = defaultOutputName
	}
	if !filepath.IsAbs(out) {
		out, err = filepath.Abs(out)
		if err != nil {
			return bundle.Options{}, fmt.Errorf("failed to resolve output path: %w", err)
		}
	}

	return bundle.Options{
		EntryFile:      entryFile,
		OutputPath:     out,
		ProjectRoot:    root,
		ExcludeModules: append(cfg.ExcludeModules, excludeModules...),
	}, nil
}

func init() {
	BundleCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default combined_output.txt)")
	BundleCmd.Flags().StringVarP(&rootOverride, "root", "r", "", "Project root directory (default: auto-detected)")
	BundleCmd.Flags().StringSliceVarP(&excludeModules, "exclude", "e", nil, "Additional top-level module names to treat as external")
}
