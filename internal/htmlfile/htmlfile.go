// Package htmlfile reads and writes the HTML document processed by cachebust.
package htmlfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// defaultPerm is used when the file mode of the target cannot be determined.
const defaultPerm fs.FileMode = 0o644

// ErrFileNotFound is returned by Read when the document does not exist.
var ErrFileNotFound = errors.New("file not found")

// Read returns the contents of the document at path.
// A missing file yields an error wrapping ErrFileNotFound that names the path.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// Write overwrites the document at path, keeping its current permissions.
func Write(path string, data []byte) error {
	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
