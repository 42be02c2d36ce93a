package logctx

import (
	"context"

	"go.uber.org/zap"
)

type requestKeyType struct{}

var requestKey = requestKeyType{}

// WithRequestID stores the request id for log lines written while serving it
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestKey, requestID)
}

// RequestID returns the request id stored in ctx
func RequestID(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(requestKey).(string)
	return s, ok
}

// Fields returns the log fields carried by ctx
func Fields(ctx context.Context) []zap.Field {
	if id, ok := RequestID(ctx); ok {
		return []zap.Field{zap.String("request_id", id)}
	}
	return nil
}
