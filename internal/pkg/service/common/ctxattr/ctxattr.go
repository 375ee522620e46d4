// Package ctxattr stores log/telemetry attributes in a context.
// The attributes are added to each log message written with the context.
package ctxattr

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type ctxKey string

const attrsCtxKey = ctxKey("attributes")

// ContextWith returns a new context with the attributes merged into the existing ones.
func ContextWith(ctx context.Context, attrs ...attribute.KeyValue) context.Context {
	existing := Attributes(ctx)
	merged := make([]attribute.KeyValue, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	set := attribute.NewSet(merged...) // the last value wins for duplicate keys
	return context.WithValue(ctx, attrsCtxKey, &set)
}

// Attributes returns attributes from the context, sorted by key.
func Attributes(ctx context.Context) []attribute.KeyValue {
	if set, ok := ctx.Value(attrsCtxKey).(*attribute.Set); ok {
		return set.ToSlice()
	}
	return nil
}
