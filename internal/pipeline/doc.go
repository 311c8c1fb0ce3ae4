// Package pipeline executes a cache-bust run as a sequence of steps.
//
// A run reads the document, resolves the version token, rewrites the
// references, emits the result (to the file or, in dry-run mode, to stdout),
// and optionally writes a change report and records the run in the history
// database. Each stage is a Step that receives the shared Run state.
//
// Steps are added only when the configuration asks for them, so the command
// layer decides what a run does and the steps stay small and testable.
package pipeline
