package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/cachebust/internal/token"
)

// Default configuration values.
const (
	// DefaultFile is the document rewritten when no --file flag is given.
	// Static sites almost always have their entry point at index.html.
	DefaultFile = "index.html"

	// DefaultStrategy generates a fresh random token for every run.
	DefaultStrategy = token.StrategyRandom

	// DefaultHistoryLimit is the number of runs listed by the history command.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "cachebust"
)

// Report format names accepted in the configuration file.
const (
	ReportJSON     = "json"
	ReportMarkdown = "markdown"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	// DefaultLogFormat is readable on a terminal.
	DefaultLogFormat = LogFormatText
)

// Config holds all options for a cache-bust run.
// It is populated from CLI flags and the optional configuration file and
// passed to the run explicitly rather than kept in global state.
type Config struct {
	// File is the path of the HTML document to rewrite.
	File string

	// Version is an explicit version token. When empty a token is generated
	// with Strategy.
	Version string

	// Strategy selects how a token is generated when Version is empty.
	// See the token package for the accepted names.
	Strategy string

	// DryRun writes the rewritten document to stdout instead of the file.
	DryRun bool

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat selects the log record encoding on stderr (text or json).
	LogFormat string

	// JSONReport emits a JSON change report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport emits a Markdown change report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is where the change report is written.
	// When empty the report goes to stdout.
	ReportFile string

	// ConfigFilePath is the explicit configuration file path.
	// If empty, the default locations are searched (see FindConfigFile).
	ConfigFilePath string

	// RecordHistory stores each non-dry run in the history database.
	// Off by default so that a run writes nothing but the document.
	RecordHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/cachebust on Linux).
	HistoryDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		File:       DefaultFile,
		Strategy:   DefaultStrategy,
		LogFormat:  DefaultLogFormat,
		HistoryDir: XDGDataDir(),
	}
}

// HasReport reports whether a change report was requested.
func (c *Config) HasReport() bool {
	return c.JSONReport || c.MarkdownReport
}

// XDGDataDir returns the XDG data directory for cachebust.
// On Linux: ~/.local/share/cachebust
// On macOS: ~/Library/Application Support/cachebust
// On Windows: %LOCALAPPDATA%\cachebust
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cachebust.
// On Linux: ~/.config/cachebust
// On macOS: ~/Library/Application Support/cachebust
// On Windows: %APPDATA%\cachebust
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found as one of the sentinel errors of this package.
func (c *Config) Validate() error {
	if c.File == "" {
		return ErrEmptyFile
	}

	if !token.ValidStrategy(c.Strategy) {
		return ErrUnknownStrategy
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// The rewritten document owns stdout in dry-run mode.
	if c.DryRun && c.HasReport() && c.ReportFile == "" {
		return ErrReportConflictsWithDryRun
	}

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return ErrUnknownLogFormat
	}

	if c.RecordHistory && c.HistoryDir == "" {
		return ErrEmptyHistoryDir
	}

	return nil
}

// ValidateHistoryLimit checks the number of runs requested from the history.
func ValidateHistoryLimit(limit int) error {
	if limit <= 0 {
		return ErrInvalidHistoryLimit
	}
	return nil
}
