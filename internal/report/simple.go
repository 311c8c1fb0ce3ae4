package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/cachebust/internal/model"
)

// reportWidth is the width of the section rules in text reports.
const reportWidth = 70

// actionOrder is the order actions are listed in text and markdown reports.
var actionOrder = []model.Action{
	model.ActionVersioned,
	model.ActionReplaced,
	model.ActionSkipped,
}

// SimpleWriter outputs human-readable text reports for terminal display.
// It uses plain ASCII formatting so the output can be piped into files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections without entries are shown.
	showEmpty bool

	// verbose lists skipped references too.
	verbose bool

	title cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run result in human-readable format.
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "CACHE BUST REPORT")

	fmt.Fprintf(&sb, "File:      %s\n", result.File)
	fmt.Fprintf(&sb, "Version:   %s (%s)\n", result.Version, result.Source)
	fmt.Fprintf(&sb, "Date:      %s\n", result.Timestamp.Format("2006-01-02 15:04:05 MST"))
	if result.DryRun {
		sb.WriteString("Mode:      dry run (file not modified)\n")
	} else {
		sb.WriteString("Mode:      file rewritten\n")
	}
	sb.WriteString("\n")

	writeSection(&sb, "SUMMARY")
	counts := map[model.Action]int{
		model.ActionVersioned: result.Versioned,
		model.ActionReplaced:  result.Replaced,
		model.ActionSkipped:   result.Skipped,
	}
	for _, action := range actionOrder {
		fmt.Fprintf(&sb, "  %-10s %d\n", w.title.String(action.String())+":", counts[action])
	}
	fmt.Fprintf(&sb, "\n  %-10s %d references\n\n", "Total:", result.Total())

	w.writeChanges(&sb, result)

	writeRule(&sb, "=")
	return w.output.Write([]byte(sb.String()))
}

// writeChanges lists the changes grouped by action.
func (w *SimpleWriter) writeChanges(sb *strings.Builder, result *model.Result) {
	if result.Total() == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "CHANGES")
	if result.Total() == 0 {
		sb.WriteString("  No link or script references matched\n\n")
		return
	}

	for _, action := range actionOrder {
		if action == model.ActionSkipped && !w.verbose {
			continue
		}
		changes := changesWithAction(result.Changes, action)
		if len(changes) == 0 && !w.showEmpty {
			continue
		}

		fmt.Fprintf(sb, "[%s] %s\n", actionIndicator(action), w.title.String(action.String()))
		if len(changes) == 0 {
			sb.WriteString("  None\n\n")
			continue
		}
		for _, c := range changes {
			if c.Modified() {
				fmt.Fprintf(sb, "  line %d <%s %s>: %s -> %s\n", c.Line, c.Tag, c.Attribute, c.Original, c.Rewritten)
			} else {
				fmt.Fprintf(sb, "  line %d <%s %s>: %s\n", c.Line, c.Tag, c.Attribute, c.Original)
			}
		}
		sb.WriteString("\n")
	}
}

// WriteInspection outputs the inspection in human-readable format.
func (w *SimpleWriter) WriteInspection(inspection *model.Inspection) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "ASSET INSPECTION")
	fmt.Fprintf(&sb, "File:        %s\n", inspection.File)
	fmt.Fprintf(&sb, "References:  %d (%d local)\n", len(inspection.References), inspection.LocalCount())
	fmt.Fprintf(&sb, "Uncovered:   %d\n\n", len(inspection.Uncovered()))

	if len(inspection.References) > 0 || w.showEmpty {
		writeSection(&sb, "REFERENCES")
		if len(inspection.References) == 0 {
			sb.WriteString("  No link or script references found\n")
		}
		for _, ref := range inspection.References {
			fmt.Fprintf(&sb, "  [%s] <%s %s> %s (%s)\n",
				coverageMark(ref.Covered), ref.Tag, ref.Attribute, ref.URL, locality(ref.External))
		}
		sb.WriteString("\n")
	}

	if len(inspection.PatternOnly) > 0 || w.showEmpty {
		writeSection(&sb, "MATCHED OUTSIDE ELEMENTS")
		if len(inspection.PatternOnly) == 0 {
			sb.WriteString("  None\n")
		}
		for _, c := range inspection.PatternOnly {
			fmt.Fprintf(&sb, "  line %d <%s %s> %s\n", c.Line, c.Tag, c.Attribute, c.Original)
		}
		sb.WriteString("\n")
	}

	writeRule(&sb, "=")
	return w.output.Write([]byte(sb.String()))
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	pad := (reportWidth - len(title)) / 2
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	writeRule(sb, "=")
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	writeRule(sb, "-")
	sb.WriteString(title + "\n")
	writeRule(sb, "-")
	sb.WriteString("\n")
}

func writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, reportWidth))
	sb.WriteString("\n")
}

// actionIndicator returns a short marker for the action.
func actionIndicator(action model.Action) string {
	switch action {
	case model.ActionVersioned:
		return "+"
	case model.ActionReplaced:
		return "~"
	case model.ActionSkipped:
		return "="
	default:
		return "?"
	}
}

func coverageMark(covered bool) string {
	if covered {
		return "ok"
	}
	return "!!"
}

func locality(external bool) string {
	if external {
		return "external"
	}
	return "local"
}

// changesWithAction filters changes by action, keeping their order.
func changesWithAction(changes []model.Change, action model.Action) []model.Change {
	var out []model.Change
	for _, c := range changes {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}
