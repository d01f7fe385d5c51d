package middleware

import (
	"context"

	"github.com/marianalima/joalheria-backend/pkg/auth/session"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxSession   contextKey = "session_record"
	ctxUserID    contextKey = "user_id"
)

// SessionIDFromContext returns the session id seeded by the session middleware.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the session record, if any.
func SessionFromContext(ctx context.Context) *session.Record {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Record); ok {
		return v
	}
	return nil
}

// UserIDFromContext returns the authenticated customer id.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// WithSession injects the session id and record into the context.
func WithSession(ctx context.Context, sessionID string, record *session.Record) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	if record != nil {
		ctx = context.WithValue(ctx, ctxSession, record)
		if record.UserID != nil {
			ctx = context.WithValue(ctx, ctxUserID, record.UserID.String())
		}
	}
	return ctx
}
