// Package httpserver provides HTTP server with common middlewares and graceful shutdown.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/httpserver/middleware"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	requestTimeout          = 30 * time.Second
	readHeaderTimeout       = 10 * time.Second
	gracefulShutdownTimeout = 30 * time.Second
)

type HTTPServer struct {
	*http.Server
	logger        log.Logger
	proc          *servicectx.Process
	listenAddress string
}

type dependencies interface {
	Logger() log.Logger
	Process() *servicectx.Process
	Telemetry() telemetry.Telemetry
}

// New creates new instance of HTTP server that is not running yet.
func New(ctx context.Context, d dependencies, cfg Config) *HTTPServer {
	server := &HTTPServer{
		logger:        d.Logger().WithComponent("http-server"),
		proc:          d.Process(),
		listenAddress: cfg.ListenAddress,
	}

	com := newComponents(cfg, server.logger)
	com.Muxer.UseHandler(middleware.OpenTelemetryExtractRoute())
	middlewareCfg := middleware.NewConfig(cfg.MiddlewareOptions...)
	tel := d.Telemetry()
	handler := middleware.Wrap(
		com.Muxer,
		middleware.ContextTimeout(requestTimeout),
		middleware.RequestInfo(),
		middleware.Filter(middlewareCfg),
		middleware.Logger(d.Logger()),
		middleware.OpenTelemetry(tel.TracerProvider(), tel.MeterProvider()),
	)

	cfg.Mount(com)
	server.logger.Infof(ctx, "mounted HTTP endpoints")

	server.Server = &http.Server{
		Addr:              server.listenAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          log.NewStdErrorLogger(server.logger),
	}
	return server
}

// Start HTTP server.
func (h *HTTPServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", h.listenAddress)
	if err != nil {
		return errors.Errorf(`cannot listen on "%s": %w`, h.listenAddress, err)
	}
	h.listenAddress = listener.Addr().String()

	h.proc.Add(func(_ context.Context, shutdown servicectx.ShutdownFn) {
		h.logger.Infof(ctx, "started HTTP server on %q", h.listenAddress)
		serverErr := h.Serve(listener) // Serve blocks while the server is running
		if errors.Is(serverErr, http.ErrServerClosed) {
			return
		}
		shutdown(context.WithoutCancel(ctx), serverErr)
	})

	h.proc.OnShutdown(func(ctx context.Context) {
		ctx, cancel := context.WithTimeoutCause(ctx, gracefulShutdownTimeout, errors.New("graceful shutdown timeout"))
		defer cancel()

		h.logger.Infof(ctx, "shutting down HTTP server at %q", h.listenAddress)
		if err := h.Shutdown(ctx); err != nil {
			h.logger.Errorf(ctx, `HTTP server shutdown error: %s`, err)
		}
		h.logger.Info(ctx, "HTTP server shutdown finished")
	})

	return nil
}

// ListenAddress returns the address, the port is resolved after Start.
func (h *HTTPServer) ListenAddress() string {
	return h.listenAddress
}
