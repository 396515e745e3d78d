package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewTee creates a logger that writes to cfg.Output (os.Stderr when nil)
// and also appends JSON records to the file at path, creating it if
// needed. The file sink always uses JSON regardless of cfg.Format so the
// log file stays machine-readable. The caller owns the returned closer
// and should close it when done logging.
func NewTee(cfg Config, path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}
	fileHandler := slog.NewJSONHandler(f, opts)

	return slog.New(NewMultiHandler(newHandler(cfg), fileHandler)), f, nil
}
