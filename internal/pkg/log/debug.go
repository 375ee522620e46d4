package log

import (
	"bufio"
	"io"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
)

type debugLogger struct {
	*zapLogger
	out *bufferWriter
}

// bufferWriter stores all messages and copies them to the connected writers.
type bufferWriter struct {
	lock      *sync.Mutex
	buf       strings.Builder
	connected []io.Writer
}

// NewDebugLogger returns a logger which stores all messages as JSON lines, it is used in tests.
func NewDebugLogger() DebugLogger {
	out := &bufferWriter{lock: &sync.Mutex{}}
	return &debugLogger{zapLogger: loggerFromZapCore(jsonCore(out, false, DebugLevel)), out: out}
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.buf.Write(p)
	for _, c := range w.connected {
		_, _ = c.Write(p)
	}
	return len(p), nil
}

func (w *bufferWriter) Sync() error {
	return nil
}

func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.out.lock.Lock()
	defer l.out.lock.Unlock()
	l.out.connected = append(l.out.connected, writer)
}

func (l *debugLogger) Truncate() {
	l.out.lock.Lock()
	defer l.out.lock.Unlock()
	l.out.buf.Reset()
}

func (l *debugLogger) AllMessages() string {
	l.out.lock.Lock()
	defer l.out.lock.Unlock()
	return l.out.buf.String()
}

func (l *debugLogger) InfoMessages() string {
	return l.filter("info")
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.filter("warn", "error")
}

func (l *debugLogger) ErrorMessages() string {
	return l.filter("error")
}

func (l *debugLogger) CompareJSONMessages(expected string) error {
	return CompareJSONMessages(expected, l.AllMessages())
}

func (l *debugLogger) AssertJSONMessages(t assert.TestingT, expected string, msgAndArgs ...any) bool {
	return AssertJSONMessages(t, expected, l.AllMessages(), msgAndArgs...)
}

// filter returns JSON lines with one of the levels.
func (l *debugLogger) filter(levels ...string) string {
	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(l.AllMessages()))
	for scanner.Scan() {
		line := scanner.Text()
		level := jsoniter.Get([]byte(line), "level").ToString()
		for _, expected := range levels {
			if level == expected {
				out.WriteString(line)
				out.WriteString("\n")
				break
			}
		}
	}
	return out.String()
}
