package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// sampleDocument contains one reference of every kind the rewriter handles.
const sampleDocument = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="/static/css/style.css">
  <link rel="stylesheet" href="css/theme.css?v=old">
  <link rel="stylesheet" href="https://cdn.example.com/lib.css">
</head>
<body>
  <script src="/static/js/app.js"></script>
  <script src="//cdn.example.com/lib.js"></script>
</body>
</html>
`

// executeRoot runs the root command in-process with the given arguments.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeDocument writes content to name inside a fresh temporary directory.
func writeDocument(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
