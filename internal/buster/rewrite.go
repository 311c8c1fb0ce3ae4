package buster

import (
	"regexp"
	"strings"

	"github.com/nao1215/cachebust/internal/model"
)

// rule is one attribute pattern applied as a full pass over the document.
type rule struct {
	tag       string
	attribute string
	re        *regexp.Regexp
}

// rules are applied in order: every link href first, then every script src.
// Group 1 is the text up to and including the opening quote, group 2 the
// attribute value and group 3 the closing quote.
var rules = []rule{
	{
		tag:       "link",
		attribute: "href",
		re:        regexp.MustCompile(`(<link[^>]+href=")([^"]+)(")`),
	},
	{
		tag:       "script",
		attribute: "src",
		re:        regexp.MustCompile(`(<script[^>]+src=")([^"]+)(")`),
	},
}

// Rewrite returns text with the version parameter applied to every local
// link href and script src value. Text outside those values is unchanged.
func Rewrite(text, version string) string {
	out, _ := RewriteWithChanges(text, version)
	return out
}

// RewriteWithChanges behaves like Rewrite and also returns one Change per
// matched attribute value, in pass order (all links, then all scripts).
// External references are reported with ActionSkipped.
func RewriteWithChanges(text, version string) (string, []model.Change) {
	changes := make([]model.Change, 0)
	for _, r := range rules {
		var passChanges []model.Change
		text, passChanges = r.apply(text, version)
		changes = append(changes, passChanges...)
	}
	return text, changes
}

// Matches returns the attribute values the rewriter would visit, without
// rewriting anything. Rewritten is left equal to Original.
func Matches(text string) []model.Change {
	matches := make([]model.Change, 0)
	for _, r := range rules {
		lc := newLineCounter(text)
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			value := text[loc[4]:loc[5]]
			matches = append(matches, model.Change{
				Tag:       r.tag,
				Attribute: r.attribute,
				Line:      lc.lineAt(loc[0]),
				Offset:    loc[0],
				Original:  value,
				Rewritten: value,
				Action:    classify(value),
			})
		}
	}
	return matches
}

// apply runs one non-overlapping left-to-right pass of the rule over text.
func (r rule) apply(text, version string) (string, []model.Change) {
	locs := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, nil
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(locs)*(len(versionParam)+len(version)))

	lc := newLineCounter(text)
	changes := make([]model.Change, 0, len(locs))
	last := 0
	for _, loc := range locs {
		// loc[4]:loc[5] is the attribute value (group 2).
		value := text[loc[4]:loc[5]]
		rewritten, action := appendVersion(value, version)

		sb.WriteString(text[last:loc[4]])
		sb.WriteString(rewritten)
		last = loc[5]

		changes = append(changes, model.Change{
			Tag:       r.tag,
			Attribute: r.attribute,
			Line:      lc.lineAt(loc[0]),
			Offset:    loc[0],
			Original:  value,
			Rewritten: rewritten,
			Action:    action,
		})
	}
	sb.WriteString(text[last:])

	return sb.String(), changes
}

// appendVersion implements AppendVersion and reports what it did.
func appendVersion(url, version string) (string, model.Action) {
	base, hadQuery := splitQuery(url)
	if IsExternal(base) {
		return url, model.ActionSkipped
	}
	if hadQuery {
		return base + versionParam + version, model.ActionReplaced
	}
	return base + versionParam + version, model.ActionVersioned
}

// classify returns the action appendVersion would take for url.
func classify(url string) model.Action {
	_, action := appendVersion(url, "")
	return action
}

// lineCounter converts increasing byte offsets into 1-based line numbers
// without rescanning the text from the start for every match.
type lineCounter struct {
	text   string
	offset int
	line   int
}

func newLineCounter(text string) *lineCounter {
	return &lineCounter{text: text, line: 1}
}

// lineAt returns the line containing offset. Offsets must not decrease
// between calls.
func (lc *lineCounter) lineAt(offset int) int {
	if offset > lc.offset {
		lc.line += strings.Count(lc.text[lc.offset:offset], "\n")
		lc.offset = offset
	}
	return lc.line
}
