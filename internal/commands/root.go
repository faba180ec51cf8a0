package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finmerge/finmerge/internal/buildinfo"
	"github.com/finmerge/finmerge/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it performs a merge.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "finmerge",
		Short:   "Merge bank and purchase CSV exports into one date-sorted file",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, opts, mergeOptions{})
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultFile, "path configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error, disabled (overrides config)")

	rootCmd.AddCommand(newMergeCommand(opts))
	rootCmd.AddCommand(newInitCommand(opts))

	return rootCmd
}
