package model

import "time"

// Version token sources recorded in a Result.
const (
	// SourceFlag means the token was supplied explicitly by the user.
	SourceFlag = "flag"

	// SourceRandom means the token was generated from a secure random source.
	SourceRandom = "random"

	// SourceContent means the token was derived from the document content.
	SourceContent = "content"
)

// Result is the outcome of one cache-bust run over a single document.
type Result struct {
	// File is the path of the processed HTML document.
	File string `json:"file"`

	// Version is the token inserted as the value of the v query parameter.
	Version string `json:"version"`

	// Source tells where the version token came from (see Source* constants).
	Source string `json:"source"`

	// DryRun is true when the document was written to stdout instead of the file.
	DryRun bool `json:"dry_run"`

	// Timestamp is when the run happened.
	Timestamp time.Time `json:"timestamp"`

	// Changes lists every matched reference in pass order.
	Changes []Change `json:"changes"`

	// Counters are derived from Changes by Summarize.
	Versioned int `json:"versioned"`
	Replaced  int `json:"replaced"`
	Skipped   int `json:"skipped"`
}

// NewResult creates a Result for the given file and version token.
func NewResult(file, version, source string) *Result {
	return &Result{
		File:      file,
		Version:   version,
		Source:    source,
		Timestamp: time.Now(),
		Changes:   make([]Change, 0),
	}
}

// SetChanges stores the changes and recomputes the counters.
func (r *Result) SetChanges(changes []Change) {
	if changes == nil {
		changes = make([]Change, 0)
	}
	r.Changes = changes
	r.Summarize()
}

// Summarize recomputes Versioned, Replaced and Skipped from Changes.
func (r *Result) Summarize() {
	r.Versioned, r.Replaced, r.Skipped = 0, 0, 0
	for _, c := range r.Changes {
		switch c.Action {
		case ActionVersioned:
			r.Versioned++
		case ActionReplaced:
			r.Replaced++
		case ActionSkipped:
			r.Skipped++
		}
	}
}

// Total returns the number of matched references.
func (r *Result) Total() int {
	return len(r.Changes)
}

// Modified returns the number of references whose value changed.
func (r *Result) Modified() int {
	return r.Versioned + r.Replaced
}
