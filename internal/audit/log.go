// Package audit emits structured audit entries for every grant mutation
// (assign, unassign, share, share update, share revoke).
package audit

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"formgate.org/internal/obs"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context so audit
// entries can be correlated with request logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Event writes one audit entry. Fields carry the natural key of the grant
// that changed; actor is the resolved acting user when known.
func Event(ctx context.Context, event, actor string, fields map[string]string) {
	event = strings.TrimSpace(event)
	if event == "" {
		return
	}

	zf := make([]zap.Field, 0, len(fields)+3)
	zf = append(zf, zap.String("type", "audit"))
	if rid := requestIDFromContext(ctx); rid != "" {
		zf = append(zf, zap.String("request_id", rid))
	}
	if actor != "" {
		zf = append(zf, zap.String("actor", actor))
	}
	for k, v := range fields {
		zf = append(zf, zap.String(k, v))
	}
	obs.Logger().Info(event, zf...)
}
