package model

// Reference is an asset reference found by the HTML parser.
type Reference struct {
	// Tag is the element name ("link" or "script").
	Tag string `json:"tag"`

	// Attribute is "href" for link elements and "src" for script elements.
	Attribute string `json:"attribute"`

	// URL is the attribute value as the parser decoded it.
	URL string `json:"url"`

	// External is true when the URL points to another host.
	External bool `json:"external"`

	// Covered is true when the rewriter's patterns match this reference.
	// Uncovered references are left untouched by a cache-bust run.
	Covered bool `json:"covered"`
}

// Inspection is a read-only audit of the asset references in a document.
type Inspection struct {
	// File is the path of the inspected document.
	File string `json:"file"`

	// References are the link/script references visible in the parsed DOM,
	// in document order.
	References []Reference `json:"references"`

	// PatternOnly lists values matched by the rewriter's patterns that the
	// parser did not see as element attributes (for example tags inside
	// comments or script string literals).
	PatternOnly []Change `json:"pattern_only"`
}

// NewInspection creates an empty Inspection for the given file.
func NewInspection(file string) *Inspection {
	return &Inspection{
		File:        file,
		References:  make([]Reference, 0),
		PatternOnly: make([]Change, 0),
	}
}

// Uncovered returns the references the rewriter would not touch.
func (i *Inspection) Uncovered() []Reference {
	var out []Reference
	for _, ref := range i.References {
		if !ref.Covered {
			out = append(out, ref)
		}
	}
	return out
}

// LocalCount returns the number of references that are not external.
func (i *Inspection) LocalCount() int {
	n := 0
	for _, ref := range i.References {
		if !ref.External {
			n++
		}
	}
	return n
}
