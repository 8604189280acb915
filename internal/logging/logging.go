// Package logging sets up the file-backed diagnostic logger. The TUI
// owns stdout, so all diagnostics go to a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Open returns a logger writing to path and a close func. An empty
// path yields a logger that discards everything.
func Open(path string) (*log.Logger, func() error, error) {
	if path == "" {
		logger := log.NewWithOptions(io.Discard, log.Options{})
		return logger, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Prefix:          "dayplan",
	})
	return logger, file.Close, nil
}
