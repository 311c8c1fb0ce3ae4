// Package main provides the entry point for the cachebust CLI.
//
// cachebust appends a version query parameter (?v=<token>) to the local
// stylesheet and script references of an HTML document so that browsers
// fetch fresh assets after a deployment. External references are left alone.
//
// Usage:
//
//	cachebust
//	cachebust --file public/index.html --version 1a2b3c4d
//	cachebust --dry-run > out.html
//
// See --help for all available options.
package main

// main is the entry point for cachebust.
func main() {
	Execute()
}
