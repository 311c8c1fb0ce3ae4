package inspect

import (
	"testing"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("finds covered references", func(t *testing.T) {
		t.Parallel()

		doc := `<html><head>
<link rel="stylesheet" href="css/style.css">
<script src="https://cdn.example.com/lib.js"></script>
</head><body><img src="logo.png"></body></html>`

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if insp.File != "index.html" {
			t.Errorf("expected file index.html, got %q", insp.File)
		}
		if len(insp.References) != 2 {
			t.Fatalf("expected 2 references, got %d: %+v", len(insp.References), insp.References)
		}
		if insp.References[0].URL != "css/style.css" || insp.References[0].External {
			t.Errorf("unexpected first reference %+v", insp.References[0])
		}
		if !insp.References[1].External {
			t.Errorf("expected CDN script to be external: %+v", insp.References[1])
		}
		if len(insp.Uncovered()) != 0 {
			t.Errorf("expected all references covered, got %+v", insp.Uncovered())
		}
		if len(insp.PatternOnly) != 0 {
			t.Errorf("expected no pattern-only matches, got %+v", insp.PatternOnly)
		}
	})

	t.Run("flags single-quoted and unquoted attributes", func(t *testing.T) {
		t.Parallel()

		doc := `<link rel='stylesheet' href='a.css'><script src=b.js></script>`

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uncovered := insp.Uncovered()
		if len(uncovered) != 2 {
			t.Fatalf("expected 2 uncovered references, got %+v", uncovered)
		}
		if uncovered[0].URL != "a.css" || uncovered[1].URL != "b.js" {
			t.Errorf("unexpected uncovered references %+v", uncovered)
		}
	})

	t.Run("reports matches inside comments", func(t *testing.T) {
		t.Parallel()

		doc := "<html><head>\n<!-- <script src=\"old.js\"></script> -->\n<script src=\"new.js\"></script>\n</head></html>"

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(insp.References) != 1 || insp.References[0].URL != "new.js" || !insp.References[0].Covered {
			t.Errorf("unexpected references %+v", insp.References)
		}
		if len(insp.PatternOnly) != 1 {
			t.Fatalf("expected 1 pattern-only match, got %+v", insp.PatternOnly)
		}
		if insp.PatternOnly[0].Original != "old.js" || insp.PatternOnly[0].Line != 2 {
			t.Errorf("unexpected pattern-only match %+v", insp.PatternOnly[0])
		}
	})

	t.Run("comment before the real element is the one left over", func(t *testing.T) {
		t.Parallel()

		doc := "<html><head>\n<!-- <script src=\"a.js\"></script> -->\n<script src=\"a.js\"></script>\n</head></html>"

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(insp.References) != 1 || !insp.References[0].Covered {
			t.Fatalf("expected the element to be covered, got %+v", insp.References)
		}
		if len(insp.PatternOnly) != 1 {
			t.Fatalf("expected 1 pattern-only match, got %+v", insp.PatternOnly)
		}
		if insp.PatternOnly[0].Line != 2 {
			t.Errorf("expected the comment match on line 2, got line %d", insp.PatternOnly[0].Line)
		}
	})

	t.Run("single-quoted element after a matching comment stays uncovered", func(t *testing.T) {
		t.Parallel()

		doc := "<!-- <script src=\"a.js\"></script> -->\n<script src='a.js'></script>"

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(insp.Uncovered()) != 1 {
			t.Errorf("expected the single-quoted element to be uncovered, got %+v", insp.References)
		}
		if len(insp.PatternOnly) != 1 || insp.PatternOnly[0].Line != 1 {
			t.Errorf("expected the comment match on line 1, got %+v", insp.PatternOnly)
		}
	})

	t.Run("self-closing link is found", func(t *testing.T) {
		t.Parallel()

		insp, err := Inspect("index.html", []byte(`<link rel="stylesheet" href="a.css" />`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(insp.References) != 1 || !insp.References[0].Covered {
			t.Errorf("expected a covered reference, got %+v", insp.References)
		}
	})

	t.Run("greedy pattern picks a different attribute", func(t *testing.T) {
		t.Parallel()

		doc := `<link href="a.css" data-href="b.css">`

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(insp.References) != 1 || insp.References[0].Covered {
			t.Errorf("expected a.css to be uncovered, got %+v", insp.References)
		}
		if len(insp.PatternOnly) != 1 || insp.PatternOnly[0].Original != "b.css" {
			t.Errorf("expected b.css to be pattern-only, got %+v", insp.PatternOnly)
		}
	})

	t.Run("decoded entities still count as covered", func(t *testing.T) {
		t.Parallel()

		doc := `<script src="app.js?a=1&amp;b=2"></script>`

		insp, err := Inspect("index.html", []byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(insp.References) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(insp.References))
		}
		if insp.References[0].URL != "app.js?a=1&b=2" {
			t.Errorf("expected decoded URL, got %q", insp.References[0].URL)
		}
		if !insp.References[0].Covered {
			t.Error("expected reference to be covered")
		}
	})

	t.Run("empty attribute is uncovered", func(t *testing.T) {
		t.Parallel()

		insp, err := Inspect("index.html", []byte(`<script src=""></script>`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(insp.Uncovered()) != 1 {
			t.Errorf("expected empty src to be uncovered, got %+v", insp.References)
		}
	})

	t.Run("inline scripts are ignored", func(t *testing.T) {
		t.Parallel()

		insp, err := Inspect("index.html", []byte(`<script>console.log("hi")</script>`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(insp.References) != 0 {
			t.Errorf("expected no references, got %+v", insp.References)
		}
	})
}
