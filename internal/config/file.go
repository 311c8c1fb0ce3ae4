package config

// File represents the structure of the .cachebust configuration file.
// Every key is optional; unset keys keep the built-in defaults.
type File struct {
	// File is the HTML document to rewrite.
	File string `yaml:"file,omitempty"`

	// Strategy is the token generation strategy (random or content).
	Strategy string `yaml:"strategy,omitempty"`

	// History enables or disables recording runs. Nil keeps the default.
	History *bool `yaml:"history,omitempty"`

	// HistoryDir overrides the history database directory.
	HistoryDir string `yaml:"historyDir,omitempty"`

	// Report selects a change report format (json or markdown).
	Report string `yaml:"report,omitempty"`

	// Output is the path the change report is written to.
	Output string `yaml:"output,omitempty"`

	// LogFormat selects the stderr log encoding (text or json).
	LogFormat string `yaml:"logFormat,omitempty"`
}

// Flag names consulted by ApplyFile. They match the root command flags.
const (
	FlagFile       = "file"
	FlagStrategy   = "strategy"
	FlagHistory    = "history"
	FlagHistoryDir = "history-dir"
	FlagJSON       = "json"
	FlagMarkdown   = "markdown"
	FlagOutput     = "output"
	FlagLogFormat  = "log-format"
)

// ApplyFile copies values from the configuration file into c.
// isSet reports whether a flag was given explicitly on the command line;
// explicit flags always take precedence over the file. c.DryRun must be
// set before calling ApplyFile.
func (c *Config) ApplyFile(f *File, isSet func(flag string) bool) error {
	if f == nil {
		return nil
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if f.File != "" && !isSet(FlagFile) {
		c.File = f.File
	}
	if f.Strategy != "" && !isSet(FlagStrategy) {
		c.Strategy = f.Strategy
	}
	if f.History != nil && !isSet(FlagHistory) {
		c.RecordHistory = *f.History
	}
	if f.HistoryDir != "" && !isSet(FlagHistoryDir) {
		c.HistoryDir = f.HistoryDir
	}
	if f.Output != "" && !isSet(FlagOutput) {
		c.ReportFile = f.Output
	}
	if f.LogFormat != "" && !isSet(FlagLogFormat) {
		c.LogFormat = f.LogFormat
	}

	if f.Report != "" && !isSet(FlagJSON) && !isSet(FlagMarkdown) {
		var jsonReport, markdownReport bool
		switch f.Report {
		case ReportJSON:
			jsonReport = true
		case ReportMarkdown:
			markdownReport = true
		default:
			return ErrUnknownReportFormat
		}

		// A dry run owns stdout. A report requested by the file gives way
		// unless the file also names an output path.
		if !c.DryRun || c.ReportFile != "" {
			c.JSONReport = jsonReport
			c.MarkdownReport = markdownReport
		}
	}

	return nil
}
