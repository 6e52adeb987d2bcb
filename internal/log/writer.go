// Package logfile keeps a text copy of a run's structured log next to its
// data files.
package logfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file created in each run directory.
const FileName = "run.log"

// Writer appends log records to run.log and mirrors them to a console writer.
type Writer struct {
	file    *os.File
	console io.Writer
}

// Open creates runDir/run.log. A nil console discards the mirror.
func Open(runDir string, console io.Writer) (*Writer, error) {
	if err := os.MkdirAll(runDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating run dir: %w", err)
	}

	f, err := os.Create(filepath.Join(runDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	if console == nil {
		console = io.Discard
	}
	return &Writer{file: f, console: console}, nil
}

// Path returns the path to the log file.
func (w *Writer) Path() string {
	return w.file.Name()
}

// Write implements io.Writer. The file write decides the result; the console
// copy is best-effort.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	w.console.Write(p) //nolint:errcheck // display-only
	return n, err
}

// Logger returns a text logger writing through w.
func (w *Writer) Logger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close closes the log file.
func (w *Writer) Close() error {
	return w.file.Close()
}
