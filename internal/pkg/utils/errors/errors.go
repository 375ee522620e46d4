// Package errors extends the standard errors package with stack traces,
// prefixed errors and multi errors formatted as a bullet list.
package errors

import (
	stdErrors "errors"
	"fmt"

	pkgErrors "github.com/pkg/errors"
)

type StackTrace = pkgErrors.StackTrace

type stackTracer interface {
	StackTrace() StackTrace
}

func New(message string) error {
	return pkgErrors.New(message)
}

// Errorf supports the %w verb, the result can be unwrapped.
func Errorf(format string, args ...any) error {
	return pkgErrors.WithStack(fmt.Errorf(format, args...)) // nolint: goerr113
}

// Wrap returns an error with the message "<message>: <err>".
func Wrap(err error, message string) error {
	return pkgErrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgErrors.Wrapf(err, format, args...)
}

func WithStack(err error) error {
	return pkgErrors.WithStack(err)
}

func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}

func As(err error, target any) bool {
	return stdErrors.As(err, target)
}

func Unwrap(err error) error {
	return stdErrors.Unwrap(err)
}

// Trace returns the first stack trace found in the error chain.
func Trace(err error) StackTrace {
	var tracer stackTracer
	if As(err, &tracer) {
		return tracer.StackTrace()
	}
	return nil
}
