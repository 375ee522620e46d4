// Package middleware contains HTTP middlewares shared by all HTTP services.
package middleware

import (
	"context"
	"net/http"
	"time"
)

type ctxKey string

type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares, the first middleware is the outermost.
func Wrap(handler http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// ContextTimeout limits duration of the request context.
func ContextTimeout(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
