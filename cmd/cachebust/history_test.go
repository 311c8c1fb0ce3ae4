package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/cachebust/internal/config"
	"github.com/nao1215/cachebust/internal/history"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [file]" {
			t.Errorf("expected use 'history [file]', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})

	t.Run("accepts at most one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("expected error for two arguments")
		}
	})
}

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	historyDir := t.TempDir()
	first := writeDocument(t, "index.html", sampleDocument)
	second := writeDocument(t, "about.html", sampleDocument)

	for _, run := range [][]string{
		{"-f", first, "-v", "one", "--history", "--history-dir", historyDir},
		{"-f", second, "-v", "two", "--history", "--history-dir", historyDir},
		{"-f", first, "-v", "three", "--history", "--history-dir", historyDir},
		{"-f", first, "-v", "dry", "--dry-run", "--history", "--history-dir", historyDir},
	} {
		if _, _, err := executeRoot(t, run...); err != nil {
			t.Fatalf("bust %v failed: %v", run, err)
		}
	}

	t.Run("lists all runs newest first", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--history-dir", historyDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Recorded runs (3)") {
			t.Errorf("expected 3 runs, got %q", stdout)
		}
		if strings.Contains(stdout, " dry ") {
			t.Error("dry run must not be recorded")
		}
		if strings.Index(stdout, "three") > strings.Index(stdout, "one") {
			t.Error("expected newest run first")
		}
	})

	t.Run("filters by file", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--history-dir", historyDir, "--json", second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var runs []history.Run
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
		if runs[0].Version != "two" {
			t.Errorf("expected version 'two', got %q", runs[0].Version)
		}
		abs, err := filepath.Abs(second)
		if err != nil {
			t.Fatal(err)
		}
		if runs[0].File != abs {
			t.Errorf("expected file %q, got %q", abs, runs[0].File)
		}
		if runs[0].Versioned != 2 || runs[0].Replaced != 1 || runs[0].Skipped != 2 {
			t.Errorf("unexpected counters %d/%d/%d", runs[0].Versioned, runs[0].Replaced, runs[0].Skipped)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--history-dir", historyDir, "--json", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var runs []history.Run
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(runs) != 1 || runs[0].Version != "three" {
			t.Errorf("expected only the latest run, got %+v", runs)
		}
	})

	t.Run("show run", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--history-dir", historyDir, "--show", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "CACHE BUST REPORT") {
			t.Errorf("expected text report, got %q", stdout)
		}
		if !strings.Contains(stdout, "/static/css/style.css") {
			t.Error("expected recorded changes in report")
		}
	})

	t.Run("show unknown run", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "history", "--history-dir", historyDir, "--show", "999")
		if !errors.Is(err, history.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})
}

func TestRunHistoryCmdConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	historyDir := filepath.Join(dir, "hist")
	cfgPath := filepath.Join(dir, ".cachebust")
	content := "history: true\nhistoryDir: " + historyDir + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	path := writeDocument(t, "index.html", sampleDocument)

	if _, _, err := executeRoot(t, "-c", cfgPath, "-f", path, "-v", "fromcfg"); err != nil {
		t.Fatalf("bust failed: %v", err)
	}

	t.Run("lists runs from the configured directory", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Recorded runs (1)") || !strings.Contains(stdout, "fromcfg") {
			t.Errorf("expected the recorded run, got %q", stdout)
		}
	})

	t.Run("history-dir flag wins over the file", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "-c", cfgPath, "--history-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded yet.") {
			t.Errorf("expected empty history, got %q", stdout)
		}
	})
}

func TestRunHistoryCmdEmpty(t *testing.T) {
	t.Parallel()

	stdout, _, err := executeRoot(t, "history", "--history-dir", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "No runs recorded yet.") {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRunHistoryCmdInvalidLimit(t *testing.T) {
	t.Parallel()

	_, _, err := executeRoot(t, "history", "--history-dir", t.TempDir(), "-n", "0")
	if !errors.Is(err, config.ErrInvalidHistoryLimit) {
		t.Errorf("expected ErrInvalidHistoryLimit, got %v", err)
	}
}
