// Package model defines the data structures shared by the cachebust packages.
//
// This package contains the following main types:
//   - Change: A single link/script reference visited by the rewriter
//   - Result: The outcome of one cache-bust run over a document
//   - Inspection: A read-only audit of the asset references in a document
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The rewriter, the report writers and the history store all
// need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// history storage.
package model
