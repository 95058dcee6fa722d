// Package logutils builds the process logger. Logs never go to the
// terminal, which belongs to the field editor while it runs.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a JSON logger at level writing to file, and a func that closes
// the file. An empty file discards all output.
func New(level string, file string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, func() {}, fmt.Errorf("parse log level: %w", err)
	}

	w, err := openLogFile(file)
	if err != nil {
		return zerolog.Logger{}, func() {}, err
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, func() { _ = w.Close() }, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openLogFile(file string) (io.WriteCloser, error) {
	if file == "" {
		return nopCloser{io.Discard}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
