package token

import (
	"errors"
	"regexp"
	"testing"

	"github.com/nao1215/cachebust/internal/model"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestRandom(t *testing.T) {
	t.Parallel()

	t.Run("returns 8 lowercase hex characters", func(t *testing.T) {
		t.Parallel()

		tok, err := Random()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hexToken.MatchString(tok) {
			t.Errorf("expected 8 lowercase hex characters, got %q", tok)
		}
	})

	t.Run("successive tokens differ", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]bool)
		for range 16 {
			tok, err := Random()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			seen[tok] = true
		}
		// 16 draws from 2^32 values colliding down to one is not a realistic outcome.
		if len(seen) < 2 {
			t.Errorf("expected distinct tokens, got %v", seen)
		}
	})
}

func TestContent(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		data := []byte(`<link rel="stylesheet" href="style.css">`)
		if Content(data) != Content(data) {
			t.Error("expected identical tokens for identical input")
		}
	})

	t.Run("differs for different input", func(t *testing.T) {
		t.Parallel()

		if Content([]byte("a")) == Content([]byte("b")) {
			t.Error("expected different tokens for different input")
		}
	})

	t.Run("has the token shape", func(t *testing.T) {
		t.Parallel()

		if tok := Content(nil); !hexToken.MatchString(tok) {
			t.Errorf("expected 8 lowercase hex characters, got %q", tok)
		}
	})

	t.Run("uses the SHA3-256 digest of empty input", func(t *testing.T) {
		t.Parallel()

		// SHA3-256("") = a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a
		if tok := Content([]byte{}); tok != "a7ffc6f8" {
			t.Errorf("expected a7ffc6f8, got %q", tok)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("explicit token wins", func(t *testing.T) {
		t.Parallel()

		tok, source, err := Resolve("release-42", StrategyContent, []byte("x"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok != "release-42" {
			t.Errorf("expected explicit token, got %q", tok)
		}
		if source != model.SourceFlag {
			t.Errorf("expected source %q, got %q", model.SourceFlag, source)
		}
	})

	t.Run("empty explicit token falls back to random", func(t *testing.T) {
		t.Parallel()

		tok, source, err := Resolve("", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hexToken.MatchString(tok) {
			t.Errorf("expected generated token, got %q", tok)
		}
		if source != model.SourceRandom {
			t.Errorf("expected source %q, got %q", model.SourceRandom, source)
		}
	})

	t.Run("content strategy hashes the data", func(t *testing.T) {
		t.Parallel()

		data := []byte("<html></html>")
		tok, source, err := Resolve("", StrategyContent, data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok != Content(data) {
			t.Errorf("expected %q, got %q", Content(data), tok)
		}
		if source != model.SourceContent {
			t.Errorf("expected source %q, got %q", model.SourceContent, source)
		}
	})

	t.Run("unknown strategy returns ErrUnknownStrategy", func(t *testing.T) {
		t.Parallel()

		_, _, err := Resolve("", "timestamp", nil)
		if !errors.Is(err, ErrUnknownStrategy) {
			t.Errorf("expected ErrUnknownStrategy, got %v", err)
		}
	})
}

func TestValidStrategy(t *testing.T) {
	t.Parallel()

	for _, name := range append(Strategies(), "") {
		if !ValidStrategy(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}
	if ValidStrategy("sha1") {
		t.Error("expected sha1 to be invalid")
	}
}
