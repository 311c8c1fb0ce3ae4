package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/cachebust/internal/model"
)

// MarkdownWriter outputs reports in Markdown format, suitable for deploy
// notes and pull request comments. It is built on nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Cache Bust Report")
	md.PlainText("")

	mode := "File rewritten"
	if result.DryRun {
		mode = "Dry run (file not modified)"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + result.File + "`"},
			{"Version", "`" + result.Version + "` (" + result.Source + ")"},
			{"Date", result.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Mode", mode},
		},
	})
	md.PlainText("")

	w.writeSummary(md, result)
	w.writeChanges(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes the action counts, a pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.Result) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Action", "Count"},
		Rows: [][]string{
			{"Versioned", strconv.Itoa(result.Versioned)},
			{"Query replaced", strconv.Itoa(result.Replaced)},
			{"Skipped (external)", strconv.Itoa(result.Skipped)},
			{"**Total**", "**" + strconv.Itoa(result.Total()) + "**"},
		},
	})
	md.PlainText("")

	if result.Total() > 0 {
		w.writePieChart(md, result)
	}

	switch {
	case result.Total() == 0:
		md.Note("No link or script references matched. The document was left unchanged.")
	case result.Replaced > 0:
		md.Importantf("%d existing query string(s) were dropped and replaced by the version parameter.", result.Replaced)
	default:
		md.Tip("All local references now carry the version parameter.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the actions.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.Result) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("References by action"),
		piechart.WithShowData(true),
	)

	if result.Versioned > 0 {
		chart.LabelAndIntValue("Versioned", uint64(result.Versioned))
	}
	if result.Replaced > 0 {
		chart.LabelAndIntValue("Replaced", uint64(result.Replaced))
	}
	if result.Skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(result.Skipped))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeChanges writes one table row per matched reference.
func (w *MarkdownWriter) writeChanges(md *markdown.Markdown, result *model.Result) {
	md.H2("Changes")
	md.PlainText("")

	if result.Total() == 0 {
		md.PlainText("No changes.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(result.Changes))
	for i, c := range result.Changes {
		rows[i] = []string{
			strconv.Itoa(c.Line),
			"`<" + c.Tag + " " + c.Attribute + ">`",
			"`" + truncateString(c.Original, 60) + "`",
			"`" + truncateString(c.Rewritten, 60) + "`",
			c.Action.String(),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Line", "Element", "Original", "Rewritten", "Action"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteInspection outputs the inspection in Markdown format.
func (w *MarkdownWriter) WriteInspection(inspection *model.Inspection) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Asset Inspection")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + inspection.File + "`"},
			{"References", strconv.Itoa(len(inspection.References))},
			{"Local", strconv.Itoa(inspection.LocalCount())},
			{"Uncovered", strconv.Itoa(len(inspection.Uncovered()))},
		},
	})
	md.PlainText("")

	if uncovered := inspection.Uncovered(); len(uncovered) > 0 {
		md.Warningf("%d reference(s) will not be versioned because the rewriter's patterns do not match them.", len(uncovered))
		md.PlainText("")
	}

	md.H2("References")
	md.PlainText("")
	if len(inspection.References) == 0 {
		md.PlainText("No link or script references found.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(inspection.References))
		for i, ref := range inspection.References {
			covered := "yes"
			if !ref.Covered {
				covered = "**no**"
			}
			rows[i] = []string{
				"`<" + ref.Tag + " " + ref.Attribute + ">`",
				"`" + truncateString(orDash(ref.URL), 60) + "`",
				locality(ref.External),
				covered,
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Element", "URL", "Location", "Covered"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(inspection.PatternOnly) > 0 {
		md.H2("Matched outside elements")
		md.PlainText("")
		items := make([]string, len(inspection.PatternOnly))
		for i, c := range inspection.PatternOnly {
			items[i] = "line " + strconv.Itoa(c.Line) + ": `" + c.Original + "`"
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [cachebust](https://github.com/nao1215/cachebust)*")
}
