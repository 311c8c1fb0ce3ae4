package model

// Change records one attribute value matched by the rewriter.
// A change is recorded for every match, including external URLs that were
// left untouched, so reports can show what was skipped.
type Change struct {
	// Tag is the element name the pattern matched ("link" or "script").
	Tag string `json:"tag"`

	// Attribute is the rewritten attribute ("href" or "src").
	Attribute string `json:"attribute"`

	// Line is the 1-based line of the match in the text the pass ran over.
	Line int `json:"line"`

	// Offset is the byte offset where the match starts in that text.
	Offset int `json:"-"`

	// Original is the attribute value before rewriting.
	Original string `json:"original"`

	// Rewritten is the attribute value after rewriting.
	// Equal to Original when Action is ActionSkipped.
	Rewritten string `json:"rewritten"`

	// Action is what the rewriter did with the value.
	Action Action `json:"action"`
}

// Modified reports whether the change altered the attribute value.
func (c Change) Modified() bool {
	return c.Original != c.Rewritten
}
