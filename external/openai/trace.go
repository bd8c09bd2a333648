package openai

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/live-corners/internal/platform/tracing"
)

var tracer = tracing.New("live-corners/external/openai", nil)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}
