package middleware

import (
	"net/http"

	"github.com/dimfeld/httptreemux/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.18.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	SpanName         = "http.server.request"
	attrResourceName = "resource.name"
)

// OpenTelemetry middleware traces and meters requests, requests excluded by WithFilterTelemetry are skipped.
// It must be registered after the Filter and RequestInfo middlewares.
func OpenTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) Middleware {
	return func(next http.Handler) http.Handler {
		h := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestID, _ := RequestIDFromContext(req.Context())
			trace.SpanFromContext(req.Context()).SetAttributes(attribute.String(attrRequestID, requestID))
			next.ServeHTTP(w, req)
		})
		return otelhttp.NewHandler(
			h,
			SpanName,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithMeterProvider(mp),
			otelhttp.WithPropagators(propagation.TraceContext{}),
			otelhttp.WithFilter(func(req *http.Request) bool {
				return !isTelemetryDisabled(req)
			}),
		)
	}
}

// OpenTelemetryExtractRoute middleware adds the route to the span and metrics attributes.
// The middleware must be registered directly to the httptreemux.ContextMux, it depends on httptreemux.ContextData.
func OpenTelemetryExtractRoute() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if routerData := httptreemux.ContextData(ctx); routerData != nil {
				route := routerData.Route()

				labeler, _ := otelhttp.LabelerFromContext(ctx)
				labeler.Add(semconv.HTTPRoute(route))

				trace.SpanFromContext(ctx).SetAttributes(attribute.String(attrResourceName, route), semconv.HTTPRoute(route))
			}
			next.ServeHTTP(w, req)
		})
	}
}
