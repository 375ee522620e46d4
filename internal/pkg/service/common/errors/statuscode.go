// Package errors contains errors with HTTP status code, name and user message.
package errors

import (
	"context"
	"net/http"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// StatusClientClosedRequest is a non-standard status code used when the client cancels the request.
const StatusClientClosedRequest = 499

type WithStatusCode interface {
	StatusCode() int
}

type WithName interface {
	ErrorName() string
}

type WithUserMessage interface {
	ErrorUserMessage() string
}

type WithErrorLogEnabled interface {
	ErrorLogEnabled() bool
}

func HTTPCodeFrom(err error) int {
	var withStatus WithStatusCode
	switch {
	case errors.As(err, &withStatus):
		return withStatus.StatusCode()
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
