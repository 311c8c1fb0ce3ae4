package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/cachebust/internal/config"
	cblog "github.com/nao1215/cachebust/internal/log"
	"github.com/nao1215/cachebust/internal/model"
	"github.com/nao1215/cachebust/internal/pipeline"
)

// runBustCmd executes the root command.
func runBustCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)

	// Stop a history write cleanly on Ctrl+C.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = runBust(ctx, cfg, cmd.OutOrStdout(), logger)
	return err
}

// getVerboseFlag gets the verbose flag value from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogFormatFlag gets the log format from the command or its parent.
func getLogFormatFlag(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			return config.DefaultLogFormat
		}
	}
	return format
}

// newLogger creates the redacting logger selected by cfg.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return cblog.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return cblog.NewSecureLogger(w, cfg.Verbose)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flags given on the command line win over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.File, err = cmd.Flags().GetString(config.FlagFile)
	if err != nil {
		return nil, err
	}

	cfg.Version, err = cmd.Flags().GetString("version")
	if err != nil {
		return nil, err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	cfg.Strategy, err = cmd.Flags().GetString(config.FlagStrategy)
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool(config.FlagJSON)
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool(config.FlagMarkdown)
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString(config.FlagOutput)
	if err != nil {
		return nil, err
	}

	cfg.RecordHistory, err = cmd.Flags().GetBool(config.FlagHistory)
	if err != nil {
		return nil, err
	}

	historyDir, err := cmd.Flags().GetString(config.FlagHistoryDir)
	if err != nil {
		return nil, err
	}
	if historyDir != "" {
		cfg.HistoryDir = historyDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogFormat = getLogFormatFlag(cmd)

	if err := applyConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigFile merges the configuration file into cfg.
// A missing file is only an error when it was requested with --config.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	path := cfg.ConfigFilePath
	if path == "" {
		path = config.FindConfigFile("")
		if path == "" {
			return nil
		}
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("%w: %s", err, path)
		}
		return fmt.Errorf("failed to load configuration file %s: %w", path, err)
	}

	if err := cfg.ApplyFile(cf, cmd.Flags().Changed); err != nil {
		return fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	return nil
}

// runBust performs one cache-bust run over cfg.File.
// In dry-run mode the rewritten document is written to out; otherwise the
// file is overwritten and a confirmation line is written to out.
func runBust(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (*model.Result, error) {
	run := pipeline.NewRun(cfg)
	if err := pipeline.NewBustPipeline(cfg, out, logger).Execute(ctx, run); err != nil {
		return nil, err
	}
	return run.Result, nil
}
