// Package buster appends cache-busting version parameters to the local
// stylesheet and script references of an HTML document.
//
// The rewriter works on the raw text with two regular expressions, one for
// the href attribute of link tags and one for the src attribute of script
// tags. It is not an HTML parser: single-quoted or unquoted attributes are
// not matched, and tags inside comments are matched like any other text.
// Everything outside the matched attribute values is copied byte for byte.
//
// # Usage
//
//	out := buster.Rewrite(html, "abcd1234")
//
//	// Same output, plus one model.Change per matched reference
//	out, changes := buster.RewriteWithChanges(html, "abcd1234")
package buster
