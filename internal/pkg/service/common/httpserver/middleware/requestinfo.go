package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/idgenerator"
	"github.com/keboola/config-features/internal/pkg/service/common/ctxattr"
)

const (
	RequestIDHeader  = "X-Request-Id"
	RequestIDCtxKey  = ctxKey("request-id")
	RequestURLCtxKey = ctxKey("request-url")
	attrRequestID    = "http.request_id"
)

// RequestInfo middleware adds requestID and URL to the context values.
func RequestInfo() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestID := idgenerator.RequestID()

			ctx := req.Context()
			ctx = context.WithValue(ctx, RequestIDCtxKey, requestID)
			ctx = context.WithValue(ctx, RequestURLCtxKey, req.URL)
			ctx = ctxattr.ContextWith(ctx, attribute.String(attrRequestID, requestID))
			req = req.WithContext(ctx)

			w.Header().Add(RequestIDHeader, requestID)

			next.ServeHTTP(w, req)
		})
	}
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(RequestIDCtxKey).(string)
	return v, ok
}
