package errors

import (
	"strings"
)

const (
	Indent = "  "
	Bullet = "- "
	// maxInlineLength is the maximum length of a prefixed error written on one line.
	maxInlineLength = 60
)

type prefixedError struct {
	prefix string
	err    error
	trace  StackTrace
}

// PrefixError returns the error with a prefix. Multiline and list errors are written as a bullet list under the prefix.
func PrefixError(err error, prefix string) error {
	if err == nil {
		panic("error cannot be nil")
	}
	return &prefixedError{prefix: prefix, err: err, trace: Trace(New(prefix))}
}

func PrefixErrorf(err error, format string, a ...any) error {
	return PrefixError(err, Errorf(format, a...).Error())
}

func (e *prefixedError) Error() string {
	prefix := strings.TrimRight(e.prefix, ".,: ") + ":"
	msg := e.err.Error()

	if isList(e.err) {
		return prefix + "\n" + msg
	}
	if strings.Contains(msg, "\n") || len(prefix)+len(msg) > maxInlineLength {
		return prefix + "\n" + Bullet + indentLines(msg)
	}
	return prefix + " " + msg
}

func (e *prefixedError) Unwrap() error {
	return e.err
}

func (e *prefixedError) StackTrace() StackTrace {
	return e.trace
}

// formatList is used as the multierror.ErrorFormatFunc.
func formatList(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}

	var out strings.Builder
	for i, err := range errs {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(Bullet)
		out.WriteString(indentLines(err.Error()))
	}
	return out.String()
}

func isList(err error) bool {
	v, ok := err.(MultiError) // nolint: errorlint
	return ok && v.Len() > 1
}

func indentLines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n"+Indent)
}
