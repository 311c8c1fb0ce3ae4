package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/cachebust/internal/config"
	"github.com/nao1215/cachebust/internal/htmlfile"
	"github.com/nao1215/cachebust/internal/inspect"
	"github.com/nao1215/cachebust/internal/report"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Audit which asset references a cache bust would update",
		Long: `Inspect parses the document as HTML and lists every <link href> and
<script src> reference together with whether a cache bust would update it.

References marked [!!] are local assets the rewriter does not recognize,
such as single-quoted or unquoted attributes. Matches found outside real
elements (for example inside HTML comments) are listed separately.

The file is never modified.

Examples:
  cachebust inspect
  cachebust inspect -f public/index.html --markdown`,
		Args: cobra.NoArgs,
		RunE: runInspectCmd,
	}

	cmd.Flags().StringP(config.FlagFile, "f", config.DefaultFile,
		"Path to the HTML file to inspect")
	cmd.Flags().Bool(config.FlagJSON, false,
		"Output in JSON format")
	cmd.Flags().Bool(config.FlagMarkdown, false,
		"Output in Markdown format")

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString(config.FlagFile)
	if err != nil {
		return err
	}
	if file == "" {
		return config.ErrEmptyFile
	}

	jsonOutput, err := cmd.Flags().GetBool(config.FlagJSON)
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool(config.FlagMarkdown)
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	data, err := htmlfile.Read(file)
	if err != nil {
		return err
	}

	inspection, err := inspect.Inspect(file, data)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", file, err)
	}

	out := cmd.OutOrStdout()
	var writer report.Writer
	switch {
	case jsonOutput:
		writer = report.NewJSONWriter(out, report.WithPrettyPrint())
	case markdownOutput:
		writer = report.NewMarkdownWriter(out)
	default:
		writer = report.NewSimpleWriter(out, report.WithShowEmpty(getVerboseFlag(cmd)))
	}

	_, err = writer.WriteInspection(inspection)
	return err
}
