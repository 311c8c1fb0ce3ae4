package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate and ApplyFile so callers can use
// errors.Is for programmatic handling.
var (
	// ErrEmptyFile is returned when the document path is empty.
	ErrEmptyFile = errors.New("no file specified: --file must not be empty")

	// ErrUnknownStrategy is returned when the token strategy is not recognized.
	ErrUnknownStrategy = errors.New("unknown version strategy: use random or content")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrReportConflictsWithDryRun is returned when a report would be written
	// to stdout while the dry-run document is also written there.
	ErrReportConflictsWithDryRun = errors.New("report and --dry-run both write to stdout: use --output to write the report to a file")

	// ErrUnknownReportFormat is returned when the configuration file names an
	// unsupported report format.
	ErrUnknownReportFormat = errors.New("unknown report format: use json or markdown")

	// ErrUnknownLogFormat is returned when --log-format is not text or json.
	ErrUnknownLogFormat = errors.New("unknown log format: use text or json")

	// ErrEmptyHistoryDir is returned when history is enabled without a directory.
	ErrEmptyHistoryDir = errors.New("history directory must not be empty")

	// ErrInvalidHistoryLimit is returned when the history limit is not positive.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be positive")
)
