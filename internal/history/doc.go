// Package history provides SQLite-based storage of cache-bust runs.
//
// Every run that rewrites a document is recorded with its version token,
// the action counters and the full change list, so the history command can
// answer "which token did the last deploy use" and show what was rewritten.
//
// SQLite (via modernc.org/sqlite) keeps the history in a single file in the
// XDG data directory and needs no CGO, which keeps cross-compilation simple.
package history
