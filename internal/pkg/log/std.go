package log

import (
	"context"
	stdLog "log"
	"strings"
)

type errorWriter struct {
	logger Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	w.logger.Error(context.Background(), strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewStdErrorLogger returns a standard logger which writes all messages in the error level, it is used by http.Server.
func NewStdErrorLogger(logger Logger) *stdLog.Logger {
	return stdLog.New(errorWriter{logger: logger}, "", 0)
}

// Sanitize replaces line breaks, so a value from a request cannot inject a new log line.
func Sanitize(in string) string {
	out := strings.ReplaceAll(in, "\n", `\n`)
	return strings.ReplaceAll(out, "\r", `\n`)
}
