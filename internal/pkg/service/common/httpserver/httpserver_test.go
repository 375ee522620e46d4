package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/log"
	svcerrors "github.com/keboola/config-features/internal/pkg/service/common/errors"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

type testDeps struct {
	logger log.Logger
	proc   *servicectx.Process
	tel    telemetry.Telemetry
}

func (d testDeps) Logger() log.Logger              { return d.logger }
func (d testDeps) Process() *servicectx.Process    { return d.proc }
func (d testDeps) Telemetry() telemetry.Telemetry { return d.tel }

func TestErrorWriter(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	wr := NewErrorWriter(logger, "my.")

	rec := httptest.NewRecorder()
	wr.WriteWithStatusCode(context.Background(), rec, errors.Wrap(svcerrors.NewMethodNotAllowedError(http.MethodPost, &url.URL{Path: "/foo"}), "wrapped"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"statusCode":405,"error":"my.methodNotAllowed","message":"wrapped: method \"POST\" is not allowed for \"/foo\""}`, rec.Body.String())

	rec = httptest.NewRecorder()
	wr.WriteWithStatusCode(context.Background(), rec, errors.New("some internal detail"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error": "my.internalError"`)
	assert.Contains(t, rec.Body.String(), `"exceptionId": "`)
	assert.NotContains(t, rec.Body.String(), "some internal detail")

	logger.AssertJSONMessages(t, `
{"level":"error","message":"some internal detail","error.name":"my.internalError","exceptionId":"%s"}
`)
}

func TestHTTPServer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := log.NewDebugLogger()
	proc, err := servicectx.New(ctx, logger, servicectx.WithoutSignals(), servicectx.WithUniqueID("<id>"))
	require.NoError(t, err)

	tel := telemetry.NewForTest(t)
	srv := New(ctx, testDeps{logger: logger, proc: proc, tel: tel}, Config{
		ListenAddress:   "localhost:0",
		ErrorNamePrefix: "test.",
		Mount: func(c Components) {
			c.Muxer.GET("/hello/:name", func(w http.ResponseWriter, req *http.Request) {
				_, _ = w.Write([]byte("hello " + httptreemux.ContextParams(req.Context())["name"]))
			})
		},
	})
	require.NoError(t, srv.Start(ctx))

	// Route
	resp, err := http.Get("http://" + srv.ListenAddress() + "/hello/world")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello world", string(body))

	// Not found
	resp, err = http.Get("http://" + srv.ListenAddress() + "/missing")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"statusCode":404,"error":"test.routeNotFound","message":"Endpoint \"/missing\" not found."}`, string(body))

	proc.Shutdown(ctx, errors.New("test done"))
	proc.WaitForShutdown()

	// Requests are traced and metered by the route
	assert.Equal(t, []string{"http.server.request", "http.server.request"}, tel.SpanNames())
	assert.Contains(t, tel.Spans()[0].Attributes(), attribute.String("http.route", "/hello/:name"))
	assert.Contains(t, tel.MetricNames(t), "http.server.duration")

	logger.AssertJSONMessages(t, `
{"level":"info","message":"mounted HTTP endpoints","component":"http-server"}
{"level":"info","message":"started HTTP server on \"%s\"","component":"http-server"}
{"level":"info","message":"req /hello/world status=200","component":"http"}
{"level":"info","message":"req /missing status=404","component":"http"}
{"level":"info","message":"shutting down HTTP server at \"%s\"","component":"http-server"}
{"level":"info","message":"HTTP server shutdown finished","component":"http-server"}
`)
}
