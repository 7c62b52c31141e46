package morphic

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates the engine logger. It writes text records to stderr and
// standardizes the "error" key to "err".
func NewLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
