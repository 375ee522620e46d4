package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// ForTest records spans and metrics in memory.
type ForTest struct {
	spans   *tracetest.SpanRecorder
	reader  *metricsdk.ManualReader
	tracer  trace.TracerProvider
	metrics metric.MeterProvider
}

func NewForTest(t *testing.T) *ForTest {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	reader := metricsdk.NewManualReader()
	return &ForTest{
		spans:   spans,
		reader:  reader,
		tracer:  tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(spans)),
		metrics: metricsdk.NewMeterProvider(metricsdk.WithReader(reader)),
	}
}

func (t *ForTest) TracerProvider() trace.TracerProvider {
	return t.tracer
}

func (t *ForTest) MeterProvider() metric.MeterProvider {
	return t.metrics
}

func (t *ForTest) Tracer() trace.Tracer {
	return t.tracer.Tracer(instrumentationName)
}

func (t *ForTest) Meter() metric.Meter {
	return t.metrics.Meter(instrumentationName)
}

// SpanNames returns names of the ended spans.
func (t *ForTest) SpanNames() []string {
	var out []string
	for _, span := range t.spans.Ended() {
		out = append(out, span.Name())
	}
	return out
}

func (t *ForTest) Spans() []tracesdk.ReadOnlySpan {
	return t.spans.Ended()
}

// MetricNames returns names of all collected metrics.
func (t *ForTest) MetricNames(tb testing.TB) []string {
	tb.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(tb, t.reader.Collect(context.Background(), &rm))
	var out []string
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out = append(out, m.Name)
		}
	}
	return out
}

// CounterValue returns the sum of all data points of the Int64 counter.
func (t *ForTest) CounterValue(tb testing.TB, name string) int64 {
	tb.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(tb, t.reader.Collect(context.Background(), &rm))
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				return total
			}
		}
	}
	return 0
}
