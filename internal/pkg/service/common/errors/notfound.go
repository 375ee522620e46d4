package errors

import (
	"fmt"
	"net/http"
	"net/url"
)

type EndpointNotFoundError struct {
	url *url.URL
}

func NewEndpointNotFoundError(url *url.URL) EndpointNotFoundError {
	return EndpointNotFoundError{url: url}
}

func (EndpointNotFoundError) ErrorName() string {
	return "routeNotFound"
}

func (EndpointNotFoundError) StatusCode() int {
	return http.StatusNotFound
}

func (EndpointNotFoundError) ErrorLogEnabled() bool {
	return false
}

func (e EndpointNotFoundError) Error() string {
	return fmt.Sprintf(`endpoint "%s" not found`, e.url.Path)
}

func (e EndpointNotFoundError) ErrorUserMessage() string {
	return fmt.Sprintf(`Endpoint "%s" not found.`, e.url.Path)
}

type MethodNotAllowedError struct {
	method string
	url    *url.URL
}

func NewMethodNotAllowedError(method string, url *url.URL) MethodNotAllowedError {
	return MethodNotAllowedError{method: method, url: url}
}

func (MethodNotAllowedError) ErrorName() string {
	return "methodNotAllowed"
}

func (MethodNotAllowedError) StatusCode() int {
	return http.StatusMethodNotAllowed
}

func (MethodNotAllowedError) ErrorLogEnabled() bool {
	return false
}

func (e MethodNotAllowedError) Error() string {
	return fmt.Sprintf(`method "%s" is not allowed for "%s"`, e.method, e.url.Path)
}
