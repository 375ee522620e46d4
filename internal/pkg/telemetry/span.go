package telemetry

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// EndSpan sets the span status according to the error and ends the span.
// Use it with a named error return value: defer telemetry.EndSpan(span, &err).
func EndSpan(span trace.Span, errPtr *error) {
	if errPtr != nil {
		if err := *errPtr; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
	span.End()
}

func Counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	return mustInstrument(meter.Int64Counter(name, metric.WithDescription(desc)))
}

func Histogram(meter metric.Meter, name, desc, unit string) metric.Float64Histogram {
	return mustInstrument(meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit)))
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
