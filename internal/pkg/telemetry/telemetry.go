// Package telemetry provides OpenTelemetry tracer and meter used by operations and services.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	otelPrometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
	traceNoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const instrumentationName = "github.com/keboola/config-features"

type Telemetry interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
	Tracer() trace.Tracer
	Meter() metric.Meter
}

type telemetry struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// NewNop returns telemetry which discards all spans and metrics.
func NewNop() Telemetry {
	return &telemetry{
		tracerProvider: traceNoop.NewTracerProvider(),
		meterProvider:  metricNoop.NewMeterProvider(),
	}
}

// NewWithPrometheus returns telemetry with metrics registered to the Prometheus registry.
// Spans are discarded.
func NewWithPrometheus(registry *prometheus.Registry) (Telemetry, error) {
	exporter, err := otelPrometheus.New(otelPrometheus.WithRegisterer(registry), otelPrometheus.WithoutScopeInfo())
	if err != nil {
		return nil, errors.Errorf("cannot create prometheus exporter: %w", err)
	}
	return &telemetry{
		tracerProvider: traceNoop.NewTracerProvider(),
		meterProvider:  metricsdk.NewMeterProvider(metricsdk.WithReader(exporter)),
	}, nil
}

func (t *telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

func (t *telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

func (t *telemetry) Tracer() trace.Tracer {
	return t.tracerProvider.Tracer(instrumentationName)
}

func (t *telemetry) Meter() metric.Meter {
	return t.meterProvider.Meter(instrumentationName)
}
