package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finmerge/finmerge/internal/config"
	"github.com/finmerge/finmerge/internal/logger"
	"github.com/finmerge/finmerge/internal/merge"
	"github.com/finmerge/finmerge/internal/runlog"
)

type mergeOptions struct {
	input    string
	output   string
	onBadRow string
}

func newMergeCommand(opts *globalOptions) *cobra.Command {
	var mo mergeOptions

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Normalize every CSV in the input folder and write one sorted file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, opts, mo)
		},
	}

	cmd.Flags().StringVar(&mo.input, "input", "", "input folder (overrides input_path)")
	cmd.Flags().StringVar(&mo.output, "output", "", "output file (overrides output_path)")
	cmd.Flags().StringVar(&mo.onBadRow, "on-bad-row", "", fmt.Sprintf("%s, %s or %s (overrides on_bad_row)",
		merge.PolicySkipFile, merge.PolicySkipRow, merge.PolicyAbort))

	return cmd
}

func runMerge(cmd *cobra.Command, opts *globalOptions, mo mergeOptions) error {
	out := cmd.OutOrStdout()

	cfg, change, err := config.LoadOrCreate(opts.configPath)
	if err != nil {
		return err
	}
	switch change {
	case config.ChangeCreated:
		fmt.Fprintf(out, "%s created with default paths.\n", opts.configPath)
	case config.ChangeUpdated:
		fmt.Fprintf(out, "%s updated with missing paths.\n", opts.configPath)
	}

	if mo.input != "" {
		cfg.InputPath = mo.input
	}
	if mo.output != "" {
		cfg.OutputPath = mo.output
	}
	if mo.onBadRow != "" {
		cfg.OnBadRow = mo.onBadRow
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	// Validate checks the policy name, so the conversion below is safe.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.InputPath, 0o755); err != nil {
		return fmt.Errorf("creating input dir: %w", err)
	}

	log := logger.New(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))
	m := merge.New(out, log)
	m.Policy = merge.Policy(cfg.OnBadRow)

	res, err := m.Run(cfg.InputPath, cfg.OutputPath)
	if err != nil {
		return err
	}

	if cfg.RunLog != "" {
		entry := runlog.Entry{
			Timestamp:   time.Now().UTC(),
			InputPath:   cfg.InputPath,
			OutputPath:  cfg.OutputPath,
			Files:       len(res.Files),
			FailedFiles: res.FailedFiles(),
			Records:     res.Records,
			Status:      runlog.StatusNoData,
		}
		if res.Written {
			entry.Status = runlog.StatusWritten
		}
		if err := runlog.Append(cfg.RunLog, []runlog.Entry{entry}); err != nil {
			log.Warn().Err(err).Str("run_log", cfg.RunLog).Msg("failed to write run log")
		}
	}

	return nil
}
