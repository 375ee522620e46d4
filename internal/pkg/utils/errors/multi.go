package errors

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// MultiError collects errors, it is safe for concurrent use.
type MultiError interface {
	error
	Append(errs ...error)
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
	Len() int
	WrappedErrors() []error
	ErrorOrNil() error
	Unwrap() []error
}

type multiError struct {
	lock *sync.Mutex
	errs *multierror.Error
}

func NewMultiError() MultiError {
	return &multiError{lock: &sync.Mutex{}, errs: &multierror.Error{ErrorFormat: formatList}}
}

// Append errors, nil values are ignored and nested multi errors are flattened.
func (e *multiError) Append(errs ...error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(MultiError); ok { // nolint: errorlint
			e.errs.Errors = append(e.errs.Errors, v.WrappedErrors()...)
		} else {
			e.errs.Errors = append(e.errs.Errors, err)
		}
	}
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	e.Append(PrefixError(err, prefix))
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.Append(PrefixError(err, fmt.Sprintf(format, a...)))
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errs.Errors)
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errs.Errors))
	copy(out, e.errs.Errors)
	return out
}

func (e *multiError) Unwrap() []error {
	return e.WrappedErrors()
}

func (e *multiError) Error() string {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.errs.Error()
}

// ErrorOrNil returns nil if no error has been appended.
func (e *multiError) ErrorOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}
