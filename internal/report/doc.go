// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for build tooling
//   - MarkdownWriter: GitHub Flavored Markdown for deploy notes and PR comments
//
// Report writing is kept apart from the data structures in the model package
// so new output formats can be added without touching the rewriter.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
