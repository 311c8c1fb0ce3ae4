package report

import (
	"io"

	"github.com/nao1215/cachebust/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the change report of a cache-bust run.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.Result) (int, error)

	// WriteInspection outputs the result of a read-only document audit.
	WriteInspection(inspection *model.Inspection) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
