// Package logging builds the slog logger shared by the app.
//
// The TUI owns the terminal while an encode runs, so nothing may write
// to stdout or stderr. By default logs are discarded; setting a log
// path routes them to a file instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup returns the application logger and a cleanup func that flushes
// and closes the sink. With an empty path the logger discards everything.
func Setup(path string) (*slog.Logger, func(), error) {
	if path == "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	cleanup := func() {
		f.Close()
	}
	return slog.New(handler), cleanup, nil
}
