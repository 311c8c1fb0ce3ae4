package buster

import (
	"strings"
	"unicode"
)

// externalPrefixes are the prefixes of URLs served by another host.
var externalPrefixes = []string{"http://", "https://", "//"}

// versionParam is inserted between the URL base and the version token.
const versionParam = "?v="

// IsExternal reports whether url points outside the local site.
// A URL is external when, after trimming surrounding whitespace, it starts
// with http://, https:// or the protocol-relative //. Everything else,
// including the empty string, is local.
func IsExternal(url string) bool {
	u := strings.TrimFunc(url, isTrimSpace)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}

// isTrimSpace reports whether r is trimmed from a URL before classification.
// The information separators U+001C to U+001F count as whitespace here.
func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// AppendVersion returns url with its query string replaced by v=version.
// External URLs are returned unmodified, query string included.
// An existing query string on a local URL is dropped, not merged.
func AppendVersion(url, version string) string {
	rewritten, _ := appendVersion(url, version)
	return rewritten
}

// splitQuery returns the part of url before the first '?' and whether a
// query separator was present.
func splitQuery(url string) (string, bool) {
	base, _, found := strings.Cut(url, "?")
	return base, found
}
