package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/live-corners/internal/platform/tracing"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

// errorResponse is the body of every handled failure.
type errorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		tracing.RecordError(trace.SpanFromContext(ctx), err)
	}
	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{
		OK:     false,
		Error:  err.Error(),
		Reason: mapped.Reason,
	})
}

// writeUpstreamFailure reports a degraded read (provider down, key missing)
// as a 200 with ok:false; the front end renders the message inline.
func writeUpstreamFailure(ctx context.Context, w http.ResponseWriter, payload any) {
	writeJSON(ctx, w, http.StatusOK, payload)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{
		OK:     false,
		Error:  "Server error",
		Reason: "internalError",
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return mappedError{HTTPStatus: http.StatusRequestEntityTooLarge, Reason: "bodyTooLarge"}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound"}
	case errors.Is(err, usecase.ErrNotConfigured):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "notConfigured"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable"}
	case errors.Is(err, usecase.ErrUpstream):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamError"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError"}
	}
}
