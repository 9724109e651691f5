package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"widget-srv/internal/model"
)

func TestNewScope_FallsBackToSubject(t *testing.T) {
	sc := NewScope(Payload{Subject: "u-1", Username: "ana@example.com", Role: "admin"})
	assert.Equal(t, model.Scope{UserID: "u-1", Username: "ana@example.com", Role: "admin"}, sc)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, model.Scope{}, GetScopeFromContext(ctx))

	ctx = SetScopeToContext(ctx, model.Scope{UserID: "u-1"})
	ctx = SetPayloadToContext(ctx, Payload{UserID: "u-1"})

	assert.Equal(t, "u-1", GetScopeFromContext(ctx).UserID)
	p, ok := GetPayloadFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", p.UserID)
}
