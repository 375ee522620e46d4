// Package http mounts the dino API endpoints and starts the HTTP server.
package http

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/umisama/go-regexpcache"

	"github.com/keboola/config-features/internal/pkg/service/common/httpserver"
	"github.com/keboola/config-features/internal/pkg/service/common/httpserver/middleware"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/dependencies"
)

const (
	ErrorNamePrefix = "dino."
	HealthCheckPath = "/health-check"
	MetricsPath     = "/metrics"
	RoarPath        = "/dino/says/:roar"
)

// StartServer mounts the endpoints and starts the HTTP server, the server is stopped on the process shutdown.
func StartServer(ctx context.Context, d dependencies.APIScope) (*httpserver.HTTPServer, error) {
	srv := httpserver.New(ctx, d, httpserver.Config{
		ListenAddress:   d.Config().API.Listen,
		ErrorNamePrefix: ErrorNamePrefix,
		MiddlewareOptions: []middleware.Option{
			middleware.WithFilterAccessLog(middleware.PathFilter(HealthCheckPath, MetricsPath)),
			middleware.WithFilterTelemetry(middleware.PathFilter(HealthCheckPath, MetricsPath)),
		},
		Mount: func(c httpserver.Components) {
			Mount(d, c)
		},
	})
	if err := srv.Start(ctx); err != nil {
		return nil, err
	}
	return srv, nil
}

func Mount(d dependencies.APIScope, c httpserver.Components) {
	c.Muxer.GET(HealthCheckPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})

	c.Muxer.Handle(http.MethodGet, MetricsPath, promhttp.HandlerFor(d.PrometheusRegistry(), promhttp.HandlerOpts{}).ServeHTTP)

	c.Muxer.GET(RoarPath, func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		roar, err := d.RoarGenerator().Roar(ctx, roarLength(httptreemux.ContextParams(ctx)["roar"]))
		if err != nil {
			c.ErrorWriter.WriteWithStatusCode(ctx, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(roar))
	})
}

// roarLength converts the numeric prefix of the path parameter to a non-negative integer, for example "12abc" is 12 and "1.5" is 1.
// A value without leading digits or a negative value is zero, an overflowing value is math.MaxInt.
// Leading zeros are removed, so the value is not parsed as an octal number.
func roarLength(param string) int {
	digits := strings.TrimLeft(regexpcache.MustCompile(`^\s*\d*`).FindString(param), " \t\n\r0")
	if digits == "" {
		return 0
	}
	length, err := cast.ToIntE(digits)
	if err != nil {
		return math.MaxInt
	}
	return length
}
