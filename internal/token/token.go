package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/cachebust/internal/model"
)

// Strategy names accepted by Resolve.
const (
	// StrategyRandom draws the token from a cryptographically secure source.
	StrategyRandom = "random"

	// StrategyContent derives the token from the document bytes.
	StrategyContent = "content"
)

// Length is the number of hex characters in a generated token.
const Length = 8

// ErrUnknownStrategy is returned when a strategy name is not recognized.
var ErrUnknownStrategy = errors.New("unknown version strategy")

// Random returns Length lowercase hex characters read from crypto/rand.
func Random() (string, error) {
	buf := make([]byte, Length/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Content returns the first Length hex characters of the SHA3-256 digest of data.
func Content(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:Length/2])
}

// Strategies returns the accepted strategy names.
func Strategies() []string {
	return []string{StrategyRandom, StrategyContent}
}

// ValidStrategy reports whether name is an accepted strategy.
// The empty string selects the default and is valid.
func ValidStrategy(name string) bool {
	switch name {
	case "", StrategyRandom, StrategyContent:
		return true
	default:
		return false
	}
}

// Resolve picks the version token for a run.
// A non-empty explicit token is returned as is (it is never validated).
// Otherwise the token is generated with the named strategy; an empty
// strategy means StrategyRandom. The second return value is the token
// source recorded in model.Result.
func Resolve(explicit, strategy string, data []byte) (string, string, error) {
	if explicit != "" {
		return explicit, model.SourceFlag, nil
	}

	switch strategy {
	case "", StrategyRandom:
		tok, err := Random()
		if err != nil {
			return "", "", err
		}
		return tok, model.SourceRandom, nil
	case StrategyContent:
		return Content(data), model.SourceContent, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
