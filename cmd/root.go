package cmd

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	bundlecmd "github.com/pybundle/pybundle/cmd/bundle"
	graphcmd "github.com/pybundle/pybundle/cmd/graph"
	ordercmd "github.com/pybundle/pybundle/cmd/order"
	watchcmd "github.com/pybundle/pybundle/cmd/watch"
	"github.com/pybundle/pybundle/internal/logging"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pybundle",
	Short: "Bundle a Python project into a single ordered text file",
	Long: `pybundle statically discovers the local files a Python entry file
transitively imports, orders them dependency-first, and concatenates them
into one delimited text artifact. Standard-library and third-party imports
are excluded; circular imports are reported and bundled best-effort.

Use 'pybundle --help' to see all available commands, or
'pybundle <command> --help' for detailed information about a specific one.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		logging.SetDefault(logging.NewLogger(os.Stderr, level))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(bundlecmd.BundleCmd)
	rootCmd.AddCommand(graphcmd.GraphCmd)
	rootCmd.AddCommand(ordercmd.OrderCmd)
	rootCmd.AddCommand(watchcmd.WatchCmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
