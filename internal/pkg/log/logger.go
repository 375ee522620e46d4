package log

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keboola/config-features/internal/pkg/service/common/ctxattr"
)

const (
	componentKey = "component"
	durationKey  = "duration"
)

// zapLogger is the default implementation of the Logger interface.
type zapLogger struct {
	core      zapcore.Core
	sugar     *zap.SugaredLogger
	component string
	attrs     []attribute.KeyValue
}

func loggerFromZapCore(core zapcore.Core) *zapLogger {
	return newZapLogger(core, "", nil)
}

func newZapLogger(core zapcore.Core, component string, attrs []attribute.KeyValue) *zapLogger {
	fields := attrsToFields(attrs)
	if component != "" {
		fields = append(fields, zap.String(componentKey, component))
	}
	return &zapLogger{
		core:      core,
		sugar:     zap.New(core).With(fields...).Sugar(),
		component: component,
		attrs:     attrs,
	}
}

func (l *zapLogger) With(attrs ...attribute.KeyValue) Logger {
	merged := make([]attribute.KeyValue, 0, len(l.attrs)+len(attrs))
	merged = append(merged, l.attrs...)
	merged = append(merged, attrs...)
	return newZapLogger(l.core, l.component, merged)
}

func (l *zapLogger) WithComponent(component string) Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return newZapLogger(l.core, component, l.attrs)
}

func (l *zapLogger) WithDuration(v time.Duration) Logger {
	return l.With(attribute.String(durationKey, v.String()))
}

func (l *zapLogger) Debug(ctx context.Context, message string) {
	l.withCtx(ctx).Debug(message)
}

func (l *zapLogger) Info(ctx context.Context, message string) {
	l.withCtx(ctx).Info(message)
}

func (l *zapLogger) Warn(ctx context.Context, message string) {
	l.withCtx(ctx).Warn(message)
}

func (l *zapLogger) Error(ctx context.Context, message string) {
	l.withCtx(ctx).Error(message)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.withCtx(ctx).Debugf(template, args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.withCtx(ctx).Infof(template, args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.withCtx(ctx).Warnf(template, args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.withCtx(ctx).Errorf(template, args...)
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *zapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if attrs := ctxattr.Attributes(ctx); len(attrs) > 0 {
		fields := attrsToFields(attrs)
		args := make([]any, len(fields))
		for i, f := range fields {
			args[i] = f
		}
		return l.sugar.With(args...)
	}
	return l.sugar
}

func attrsToFields(attrs []attribute.KeyValue) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	return fields
}
