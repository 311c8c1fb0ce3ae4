// Package inspect audits the asset references of an HTML document.
//
// The rewriter in package buster matches attribute values with regular
// expressions, which is fast and keeps the rest of the document byte for
// byte identical, but it misses references written in ways the patterns do
// not expect (single quotes, no quotes) and it rewrites tags that only look
// like tags (inside comments or script strings).
//
// This package parses the document with golang.org/x/net/html and compares
// what a browser would load with what the rewriter would touch, so those
// cases can be found before a deploy. It never modifies the document.
package inspect
