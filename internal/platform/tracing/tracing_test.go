package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStart_NoParentIsNoop(t *testing.T) {
	tr := New("live-corners/test", nil)

	ctx := context.Background()
	got, span := tr.Start(ctx, "usecase.WatchListService.Refresh")
	if got != ctx {
		t.Fatalf("context must be returned unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span without parent")
	}
	span.End()
}

func TestStart_FilterAndBlankName(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)
	tr := New("live-corners/test", HasPrefix("httpapi.Handler."))

	if got, _ := tr.Start(ctx, "httpapi.writeError"); got != ctx {
		t.Fatalf("filtered name must not open a span")
	}
	if got, _ := tr.Start(ctx, "  "); got != ctx {
		t.Fatalf("blank name must not open a span")
	}
}

func TestHasPrefix(t *testing.T) {
	allow := HasPrefix("httpapi.Handler.")
	if !allow("httpapi.Handler.Analyze") {
		t.Fatalf("expected handler span to be allowed")
	}
	if allow("httpapi.RequestLogging") {
		t.Fatalf("expected middleware span to be filtered")
	}
}

func TestRecordError_NilSafe(t *testing.T) {
	RecordError(nil, errors.New("boom"))
	RecordError(noopSpan, errors.New("boom"))
	RecordError(noopSpan, nil)
}
