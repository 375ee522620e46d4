package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/httpserver/middleware"
	"github.com/keboola/config-features/internal/pkg/telemetry"
)

func TestRequestInfoAndLogger(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	var requestID string
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var ok bool
		requestID, ok = middleware.RequestIDFromContext(req.Context())
		require.True(t, ok)
		logger.Info(req.Context(), "inside handler")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("OK"))
	}))
	handler = middleware.Wrap(handler, middleware.RequestInfo(), middleware.Logger(logger))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/foo?bar=baz", nil)
	req.Header.Set("User-Agent", "my-user-agent")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, requestID, rec.Header().Get(middleware.RequestIDHeader))
	logger.AssertJSONMessages(t, `
{"level":"info","message":"inside handler","http.request_id":"%s"}
{"level":"info","message":"req /foo?bar=baz status=202","component":"http","http.method":"GET","http.status_code":202,"http.response_length":2,"http.user_agent":"my-user-agent"}
`)
}

func TestFilter_AccessLog(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	cfg := middleware.NewConfig(middleware.WithFilterAccessLog(middleware.PathFilter("/health-check")))
	handler := middleware.Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}),
		middleware.Filter(cfg),
		middleware.Logger(logger),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health-check", nil))
	assert.Empty(t, logger.AllMessages())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Contains(t, logger.AllMessages(), "req /other status=200")
}

func TestOpenTelemetry(t *testing.T) {
	t.Parallel()

	tel := telemetry.NewForTest(t)
	cfg := middleware.NewConfig(middleware.WithFilterTelemetry(middleware.PathFilter("/metrics")))
	handler := middleware.Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}),
		middleware.RequestInfo(),
		middleware.Filter(cfg),
		middleware.OpenTelemetry(tel.TracerProvider(), tel.MeterProvider()),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/foo", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/foo", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Filtered request is not traced
	assert.Equal(t, []string{middleware.SpanName, middleware.SpanName}, tel.SpanNames())
	for _, span := range tel.Spans() {
		var requestID string
		for _, attr := range span.Attributes() {
			if attr.Key == "http.request_id" {
				requestID = attr.Value.AsString()
			}
		}
		assert.NotEmpty(t, requestID)
	}
	assert.Contains(t, tel.MetricNames(t), "http.server.duration")
}

func TestContextTimeout(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	handler := middleware.Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			deadline, _ = req.Context().Deadline()
		}),
		middleware.ContextTimeout(time.Minute),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, deadline.IsZero())
}
