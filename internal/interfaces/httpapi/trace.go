package httpapi

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/live-corners/internal/platform/tracing"
)

// Only handler spans are worth the noise; middleware and response helpers
// run inside them.
var shouldCreateHTTPAPISpan = tracing.HasPrefix("httpapi.Handler.")

var apiTracer = tracing.New("live-corners/internal/interfaces/httpapi", shouldCreateHTTPAPISpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
