// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"tgcheck/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyOperator ctxKey = "operator"

// WithRequest annotates context with the request id for chi and the logger
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	// set chi RequestID so chimw.GetReqID can retrieve it
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// WithOperator annotates context with the authenticated API caller
func WithOperator(ctx context.Context, name string) context.Context {
	if name != "" {
		ctx = context.WithValue(ctx, keyOperator, name)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// Operator returns the authenticated API caller if present
func Operator(ctx context.Context) string {
	if v, ok := ctx.Value(keyOperator).(string); ok {
		return v
	}
	return ""
}
