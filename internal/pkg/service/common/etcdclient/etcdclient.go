// Package etcdclient creates an etcd client prefixed by a namespace and closed on the process shutdown.
package etcdclient

import (
	"context"
	"strings"
	"time"

	etcd "go.etcd.io/etcd/client/v3"
	etcdNamespace "go.etcd.io/etcd/client/v3/namespace"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"         //nolint: depguard
	"go.uber.org/zap/zapcore" //nolint: depguard

	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

func UseNamespace(c *etcd.Client, prefix string) {
	c.KV = etcdNamespace.NewKV(c.KV, prefix)
	c.Watcher = etcdNamespace.NewWatcher(c.Watcher, prefix)
	c.Lease = etcdNamespace.NewLease(c.Lease, prefix)
}

// New creates new etcd client and checks the connection.
// The client is closed on the process shutdown.
func New(ctx context.Context, proc *servicectx.Process, tel telemetry.Telemetry, logger log.Logger, cfg Config) (c *etcd.Client, err error) {
	ctx, span := tel.Tracer().Start(ctx, "keboola.go.common.etcdclient.New")
	defer telemetry.EndSpan(span, &err)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger = logger.WithComponent("etcd-client")

	// Messages of the etcd client are written to the logger, debug messages are skipped
	etcdLogger := zap.New(log.NewCallbackCore(func(entry zapcore.Entry, _ []zapcore.Field) {
		switch entry.Level {
		case zapcore.DebugLevel:
		case zapcore.InfoLevel:
			logger.Info(ctx, entry.Message)
		case zapcore.WarnLevel:
			logger.Warn(ctx, entry.Message)
		default:
			logger.Error(ctx, entry.Message)
		}
	}))

	startTime := time.Now()
	logger.Infof(ctx, "connecting to etcd, connectTimeout=%s, keepAliveTimeout=%s, keepAliveInterval=%s", cfg.ConnectTimeout, cfg.KeepAliveTimeout, cfg.KeepAliveInterval)
	c, err = etcd.New(etcd.Config{
		Context:              context.WithoutCancel(ctx), // the client lives as long as the process
		Endpoints:            strings.Split(cfg.Endpoint, ","),
		DialTimeout:          cfg.ConnectTimeout,
		DialKeepAliveTimeout: cfg.KeepAliveTimeout,
		DialKeepAliveTime:    cfg.KeepAliveInterval,
		Username:             cfg.Username, // optional
		Password:             cfg.Password, // optional
		Logger:               etcdLogger,
		PermitWithoutStream:  true, // always send keep-alive pings
	})
	if err != nil {
		return nil, errors.Errorf("cannot create etcd client: %w", err)
	}

	// Check the connection
	checkCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if _, err := c.Get(checkCtx, "health-check", etcd.WithCountOnly()); err != nil {
		_ = c.Close()
		return nil, errors.Errorf("cannot create etcd client: cannot connect: %w", err)
	}

	UseNamespace(c, cfg.Namespace)

	proc.OnShutdown(func(ctx context.Context) {
		logger.Info(ctx, "closing etcd connection")
		if err := c.Close(); err != nil {
			logger.Warnf(ctx, "cannot close etcd connection: %s", err)
		} else {
			logger.Info(ctx, "closed etcd connection")
		}
	})

	logger.With(attribute.String("namespace", cfg.Namespace)).Infof(ctx, `connected to etcd cluster "%s" | %s`, c.Endpoints()[0], time.Since(startTime))
	return c, nil
}
