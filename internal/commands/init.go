package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/finmerge/finmerge/internal/config"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var input, output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the input folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts.configPath, input, output, force)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input folder")
	cmd.Flags().StringVar(&output, "output", "", "output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, path, input, output string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	if input != "" {
		cfg.InputPath = input
	}
	if output != "" {
		cfg.OutputPath = output
	}

	if err := os.MkdirAll(cfg.InputPath, 0o755); err != nil {
		return fmt.Errorf("creating input dir: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s (input: %s, output: %s)\n", path, cfg.InputPath, cfg.OutputPath)
	return nil
}
