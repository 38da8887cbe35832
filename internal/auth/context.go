package auth

import (
	"context"
	"errors"

	"admindash/internal/model"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Name   string
	Role   model.Role
}

type contextKey int

const identityContextKey contextKey = 1

var ErrUnauthorized = errors.New("unauthorized")

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	return id, nil
}
