// Package writers resolves a --log-output value to an io.Writer.
package writers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedOutput = errors.New("unsupported log output")

// CreateWriter creates an io.Writer from a --log-output value.
// Supported formats:
//   - "stderr" or "" - writes to os.Stderr
//   - "stdout" - writes to os.Stdout
//   - "file:///path/to/file" - appends to a file (creates directories if needed)
//   - "path/to/file" - appends to a file (creates directories if needed)
func CreateWriter(output string) (io.Writer, error) {
	switch {
	case output == "" || output == "stderr":
		return os.Stderr, nil
	case output == "stdout":
		return os.Stdout, nil
	case strings.HasPrefix(output, "file://"):
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	case strings.Contains(output, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOutput, output)
	default:
		return createFileWriter(output)
	}
}

// createFileWriter opens filePath for appending, creating parent directories.
func createFileWriter(filePath string) (io.Writer, error) {
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return file, nil
}
