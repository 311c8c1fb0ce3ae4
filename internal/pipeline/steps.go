package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/cachebust/internal/buster"
	"github.com/nao1215/cachebust/internal/config"
	"github.com/nao1215/cachebust/internal/history"
	"github.com/nao1215/cachebust/internal/htmlfile"
	"github.com/nao1215/cachebust/internal/model"
	"github.com/nao1215/cachebust/internal/report"
	"github.com/nao1215/cachebust/internal/token"
)

// ErrNoResult is returned by a step that runs before the token step has
// created the run result.
var ErrNoResult = errors.New("no run result: token step has not run")

// NewBustPipeline assembles the steps of a cache-bust run for cfg.
// Documents and confirmation lines go to out; the report goes to out too
// unless cfg.ReportFile is set.
func NewBustPipeline(cfg *config.Config, out io.Writer, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))
	p.AddSteps(
		NewReadStep(),
		NewTokenStep(),
		NewRewriteStep(logger),
		NewEmitStep(out),
	)
	if cfg.HasReport() {
		p.AddStep(NewReportStep(out))
	}
	if cfg.RecordHistory && !cfg.DryRun {
		p.AddStep(NewHistoryStep(logger))
	}
	return p
}

// ReadStep loads the document. A missing file stops the run before
// anything touches the disk.
type ReadStep struct{}

// NewReadStep creates a new read step.
func NewReadStep() *ReadStep {
	return &ReadStep{}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do executes the read step.
func (s *ReadStep) Do(_ context.Context, run *Run) error {
	data, err := htmlfile.Read(run.Config.File)
	if err != nil {
		return err
	}
	run.Data = data
	return nil
}

// TokenStep resolves the version token and creates the run result.
type TokenStep struct{}

// NewTokenStep creates a new token step.
func NewTokenStep() *TokenStep {
	return &TokenStep{}
}

// Name returns the step name.
func (s *TokenStep) Name() string {
	return "token"
}

// Do executes the token step.
func (s *TokenStep) Do(_ context.Context, run *Run) error {
	version, source, err := token.Resolve(run.Config.Version, run.Config.Strategy, run.Data)
	if err != nil {
		return fmt.Errorf("failed to generate version token: %w", err)
	}

	run.Result = model.NewResult(run.Config.File, version, source)
	run.Result.DryRun = run.Config.DryRun
	return nil
}

// RewriteStep appends the version to every matched reference.
type RewriteStep struct {
	logger *slog.Logger
}

// NewRewriteStep creates a new rewrite step that logs each change at
// debug level.
func NewRewriteStep(logger *slog.Logger) *RewriteStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RewriteStep{logger: logger}
}

// Name returns the step name.
func (s *RewriteStep) Name() string {
	return "rewrite"
}

// Do executes the rewrite step.
func (s *RewriteStep) Do(_ context.Context, run *Run) error {
	if run.Result == nil {
		return fmt.Errorf("rewrite: %w", ErrNoResult)
	}

	output, changes := buster.RewriteWithChanges(string(run.Data), run.Result.Version)
	run.Output = output
	run.Result.SetChanges(changes)

	for _, c := range changes {
		s.logger.Debug("reference",
			"tag", c.Tag,
			"line", c.Line,
			"action", c.Action.String(),
			"url", c.Original,
			"rewritten", c.Rewritten,
		)
	}
	s.logger.Debug("rewrite finished",
		"file", run.Result.File,
		"source", run.Result.Source,
		"versioned", run.Result.Versioned,
		"replaced", run.Result.Replaced,
		"skipped", run.Result.Skipped,
	)
	return nil
}

// EmitStep delivers the rewritten document. In dry-run mode the document
// is written to out and the file is left alone; otherwise the file is
// overwritten and a confirmation line is written to out.
type EmitStep struct {
	out io.Writer
}

// NewEmitStep creates a new emit step.
func NewEmitStep(out io.Writer) *EmitStep {
	return &EmitStep{out: out}
}

// Name returns the step name.
func (s *EmitStep) Name() string {
	return "emit"
}

// Do executes the emit step.
func (s *EmitStep) Do(_ context.Context, run *Run) error {
	if run.Result == nil {
		return fmt.Errorf("emit: %w", ErrNoResult)
	}

	if run.Config.DryRun {
		if _, err := io.WriteString(s.out, run.Output); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		return nil
	}

	if err := htmlfile.Write(run.Config.File, []byte(run.Output)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "Cache bust complete for %s with version: %s\n", run.Config.File, run.Result.Version)
	return err
}

// ReportStep writes the change report to Config.ReportFile or, when no
// file is configured, to out.
type ReportStep struct {
	out io.Writer
}

// NewReportStep creates a new report step.
func NewReportStep(out io.Writer) *ReportStep {
	return &ReportStep{out: out}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, run *Run) (err error) {
	if run.Result == nil {
		return fmt.Errorf("report: %w", ErrNoResult)
	}
	cfg := run.Config

	output := s.out
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, openErr := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if openErr != nil {
			return fmt.Errorf("failed to create output file: %w", openErr)
		}
		defer closeFile(f, &err)
		output = f
	}

	var writer report.Writer = report.NewMarkdownWriter(output)
	if cfg.JSONReport {
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	}

	if _, err := writer.Write(run.Result); err != nil {
		return fmt.Errorf("failed to output report: %w", err)
	}
	return nil
}

// HistoryStep records the run in the history database.
// History is a convenience, so failures are logged and never fail the run.
type HistoryStep struct {
	logger *slog.Logger
	opts   history.Options
}

// NewHistoryStep creates a new history step using history.DefaultOptions.
func NewHistoryStep(logger *slog.Logger) *HistoryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryStep{
		logger: logger,
		opts:   history.DefaultOptions(),
	}
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do executes the history step.
func (s *HistoryStep) Do(ctx context.Context, run *Run) error {
	if run.Result == nil {
		return nil
	}

	store, err := history.Open(run.Config.HistoryDir, s.opts)
	if err != nil {
		s.logger.Warn("failed to open history database", "error", err)
		return nil
	}
	defer store.Close()

	// Runs are keyed by absolute path so the history command finds them
	// from any working directory.
	rec := *run.Result
	if abs, err := filepath.Abs(rec.File); err == nil {
		rec.File = abs
	}

	if prev, err := store.Latest(ctx, rec.File); err == nil {
		s.logger.Debug("previous run", "id", prev.ID, "version", prev.Version)
	}

	id, err := store.Record(ctx, &rec)
	if err != nil {
		s.logger.Warn("failed to record run", "error", err)
		return nil
	}
	s.logger.Debug("run recorded", "id", id, "database", store.Path())
	return nil
}

// closeFile closes c and stores the close error in *errp unless an earlier
// error is already there. Buffered data reaches the disk only on close.
func closeFile(c io.Closer, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("failed to close output file: %w", cerr)
	}
}
