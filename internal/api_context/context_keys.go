package api_context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	SessionIDKey ctxKey = "sessionID"
	RequestIDKey ctxKey = "requestID"
)

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
