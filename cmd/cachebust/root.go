// Package main provides the entry point for the cachebust CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/cachebust/internal/config"
	"github.com/nao1215/cachebust/internal/token"
)

// NewRootCmd creates the root command for cachebust.
// The root command itself performs the cache bust; subcommands cover
// history, inspection and setup.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cachebust",
		Short: "Append a cache-busting version to local CSS and JS references",
		Long: `cachebust rewrites an HTML document so that every local stylesheet
(<link href="...">) and script (<script src="...">) reference carries a
version query parameter, for example style.css?v=1a2b3c4d.

References to external hosts (http://, https:// and protocol-relative //)
are never modified. An existing query string on a local reference is
replaced by the version parameter.

Examples:
  # Rewrite index.html in place with a random token
  cachebust

  # Use an explicit token
  cachebust -f public/index.html -v 2024.06.01

  # Derive the token from the document content
  cachebust --strategy content

  # Print the rewritten document instead of saving it
  cachebust --dry-run

  # Save a Markdown change report next to the site
  cachebust --markdown -o reports/cachebust.md

  # Keep a record of the run for 'cachebust history'
  cachebust --history`,
		Args:          cobra.NoArgs,
		RunE:          runBustCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands.
	// -v is taken by --version, so verbose has no shorthand.
	cmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat,
		"Log format on stderr: text or json")

	// Document flags
	cmd.Flags().StringP(config.FlagFile, "f", config.DefaultFile,
		"Path to the HTML file to update")
	cmd.Flags().StringP("version", "v", "",
		"Version token to append (generated when empty)")
	cmd.Flags().Bool("dry-run", false,
		"Print the rewritten document without modifying the file")
	cmd.Flags().StringP(config.FlagStrategy, "s", config.DefaultStrategy,
		"Token generation strategy: "+strings.Join(token.Strategies(), " or "))

	// Report flags
	cmd.Flags().Bool(config.FlagJSON, false,
		"Emit a JSON change report")
	cmd.Flags().Bool(config.FlagMarkdown, false,
		"Emit a Markdown change report")
	cmd.Flags().StringP(config.FlagOutput, "o", "",
		"Write the change report to a file instead of stdout")

	// History flags
	cmd.Flags().Bool(config.FlagHistory, false,
		"Record this run in the history database")
	cmd.Flags().String(config.FlagHistoryDir, "",
		"Directory of the history database (default: XDG data directory)")

	// Config file flag
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .cachebust in current directory)")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit status.
// Errors are printed to stderr and yield status 1.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
