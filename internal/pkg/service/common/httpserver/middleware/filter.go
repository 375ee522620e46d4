package middleware

import (
	"context"
	"net/http"
)

const (
	disabledAccessLogCtxKey = ctxKey("disabled-access-log")
	disabledTelemetryCtxKey = ctxKey("disabled-telemetry")
)

// FilterFn is a predicate used to determine whether a given http.request should
// be logged/traced. A Filter must return true if the request should be logged/traced.
type FilterFn func(*http.Request) bool

// PathFilter returns a filter which excludes the paths.
func PathFilter(paths ...string) FilterFn {
	return func(req *http.Request) bool {
		for _, p := range paths {
			if req.URL.Path == p {
				return false
			}
		}
		return true
	}
}

func Filter(cfg Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			for _, f := range cfg.accessLogFilters {
				if !f(req) {
					ctx = context.WithValue(ctx, disabledAccessLogCtxKey, true)
					break
				}
			}
			for _, f := range cfg.telemetryFilters {
				if !f(req) {
					ctx = context.WithValue(ctx, disabledTelemetryCtxKey, true)
					break
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func isAccessLogDisabled(req *http.Request) bool {
	return req.Context().Value(disabledAccessLogCtxKey) == true
}

func isTelemetryDisabled(req *http.Request) bool {
	return req.Context().Value(disabledTelemetryCtxKey) == true
}
