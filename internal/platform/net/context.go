// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"namematch/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Response headers carrying correlation ids. HeaderRunID matters on responses
// with no envelope, such as CSV downloads
const (
	HeaderRequestID = "X-Request-ID"
	HeaderRunID     = "X-Run-Id"
)

// WithRequest annotates context with the request id and, when known, the
// reconciliation run id. The run id shares the logger's key so log lines and
// envelopes always agree
func WithRequest(ctx context.Context, reqID, runID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
		ctx = logger.WithRequest(ctx, reqID)
	}
	return logger.WithRun(ctx, runID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// RunID returns the run id on the context if present
func RunID(ctx context.Context) string {
	return logger.RunID(ctx)
}
