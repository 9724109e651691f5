package scope

import (
	"context"

	"widget-srv/internal/model"
)

// NewScope creates a new scope.
func NewScope(payload Payload) model.Scope {
	userID := payload.UserID
	if userID == "" {
		userID = payload.Subject
	}

	return model.Scope{
		UserID:   userID,
		Username: payload.Username,
		Role:     payload.Role,
	}
}

func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, payloadCtxKey{}, payload)
}

func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(payloadCtxKey{}).(Payload)
	return p, ok
}

func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScopeFromContext returns the caller scope, or the zero scope for unauthenticated contexts.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc
}
