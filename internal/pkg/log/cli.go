package log

import (
	"io"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a logger for the CLI.
// Debug and info messages are written to stdout, warnings and errors to stderr.
// Debug messages are written only in the verbose mode.
// If stderr is a terminal, warnings and errors are prefixed by the colored level.
func NewCliLogger(stdout io.Writer, stderr io.Writer, verbose bool) Logger {
	return loggerFromZapCore(zapcore.NewTee(stdoutCore(stdout, verbose), stderrCore(stderr, IsTerminal(stderr))))
}

// IsTerminal returns true if the writer is a terminal device.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// NewServiceLogger creates a logger for a long-running service, messages are written as JSON lines.
func NewServiceLogger(w io.Writer, debug bool) Logger {
	minLevel := InfoLevel
	if debug {
		minLevel = DebugLevel
	}
	return loggerFromZapCore(jsonCore(w, true, minLevel))
}

func NewNopLogger() Logger {
	return loggerFromZapCore(zapcore.NewNopCore())
}
