package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/cachebust/internal/config"
	"github.com/nao1215/cachebust/internal/history"
	"github.com/nao1215/cachebust/internal/report"
)

// NewHistoryCmd creates the history command.
// This command lists the runs recorded in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "List recorded cache-bust runs",
		Long: `History lists the cache-bust runs recorded in the history database,
newest first. Only runs made with --history (or history: true in the
configuration file) are recorded; dry runs never are.

When a file is given only runs for that document are listed. Files are
matched by absolute path, so relative paths are resolved against the
current directory.

Examples:
  # List the 20 most recent runs
  cachebust history

  # List runs for one document
  cachebust history public/index.html

  # Show the changes made by run 12
  cachebust history --show 12

  # Output as JSON
  cachebust history --json -n 100`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to list")
	cmd.Flags().Bool("json", false,
		"Output in JSON format")
	cmd.Flags().Int64("show", 0,
		"Show the recorded changes of the run with this ID")
	cmd.Flags().String(config.FlagHistoryDir, "",
		"Directory of the history database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .cachebust in current directory)")

	return cmd
}

// resolveHistoryDir returns the history directory the root command would
// record into: --history-dir, else historyDir from the configuration file,
// else the XDG data directory.
func resolveHistoryDir(cmd *cobra.Command) (string, error) {
	cfg := config.NewConfig()

	dir, err := cmd.Flags().GetString(config.FlagHistoryDir)
	if err != nil {
		return "", err
	}
	if dir != "" {
		cfg.HistoryDir = dir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return "", err
	}

	if err := applyConfigFile(cmd, cfg); err != nil {
		return "", err
	}
	return cfg.HistoryDir, nil
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	// Validate before opening the database.
	if err := config.ValidateHistoryLimit(limit); err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	dir, err := resolveHistoryDir(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Nothing has been recorded yet; do not create an empty database.
	if _, err := os.Stat(filepath.Join(dir, history.DBFileName)); os.IsNotExist(err) {
		if showID > 0 {
			return fmt.Errorf("%w: %d", history.ErrRunNotFound, showID)
		}
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	store, err := history.Open(dir, history.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if showID > 0 {
		return showRun(ctx, store, showID, jsonOutput, out)
	}

	var file string
	if len(args) > 0 {
		file, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
	}

	runs, err := store.List(ctx, file, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	writeRunTable(out, runs, file)
	return nil
}

// showRun prints the full recorded result of one run.
func showRun(ctx context.Context, store *history.Store, id int64, jsonOutput bool, out io.Writer) error {
	result, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	var writer report.Writer = report.NewSimpleWriter(out, report.WithVerbose(true))
	if jsonOutput {
		writer = report.NewJSONWriter(out, report.WithPrettyPrint())
	}
	_, err = writer.Write(result)
	return err
}

// writeRunTable prints runs as an aligned text table.
func writeRunTable(out io.Writer, runs []history.Run, file string) {
	if len(runs) == 0 {
		if file != "" {
			fmt.Fprintf(out, "No runs recorded for %s\n", file)
		} else {
			fmt.Fprintln(out, "No runs recorded yet.")
		}
		return
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-19s  %-10s  %-8s  %-12s  %s\n", "ID", "Date", "Version", "Source", "V/R/S", "File")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-19s  %-10s  %-8s  %-12s  %s\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Version,
			run.Source,
			fmt.Sprintf("%d/%d/%d", run.Versioned, run.Replaced, run.Skipped),
			run.File,
		)
	}

	fmt.Fprintln(out, "\nUse 'cachebust history --show <id>' to see the changes of a run.")
}
