// Package token generates the version tokens inserted by cachebust.
//
// Two strategies are available:
//   - random: 8 lowercase hex characters from crypto/rand (the default)
//   - content: the first 8 hex characters of the SHA3-256 digest of the
//     document, so identical input always yields the same token
//
// A token supplied by the user always wins over the strategy.
package token
