// Package tracing wraps the global OpenTelemetry tracer so that packages only
// add child spans to requests that are already traced. Health probes are
// excluded from tracing by the HTTP middleware, so their helpers stay silent.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

type Tracer struct {
	scope string
	allow func(name string) bool
}

// New returns a Tracer for an instrumentation scope. allow filters span
// names; nil allows every name.
func New(scope string, allow func(name string) bool) Tracer {
	return Tracer{scope: scope, allow: allow}
}

// HasPrefix allows span names starting with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// Start opens a child span when ctx carries a valid span and name passes the
// filter. Otherwise ctx is returned unchanged with a no-op span.
func (t Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.allow != nil && !t.allow(name) {
		return ctx, noopSpan
	}
	return otel.Tracer(t.scope).Start(ctx, name, trace.WithAttributes(attrs...))
}

// Root opens a new root span for work that starts outside any request, such
// as a scheduler tick.
func (t Tracer) Root(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(t.scope).Start(ctx, name, trace.WithNewRoot(), trace.WithAttributes(attrs...))
}

// RecordError marks span as failed. A nil err or a non-recording span is a
// no-op.
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
