package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// EnvVar names the environment variable that sends debug records to a file.
const EnvVar = "DOMGEN_DEBUG"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenFile appends debug records to the file at path, creating its
// directory if needed. Close the returned file when done.
func OpenFile(path string) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	SetOutput(f, slog.LevelDebug)
	return f, nil
}

// FromEnv calls OpenFile with the path in DOMGEN_DEBUG. Without the variable
// logging is left unchanged.
func FromEnv() (io.Closer, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nopCloser{}, nil
	}
	return OpenFile(path)
}
