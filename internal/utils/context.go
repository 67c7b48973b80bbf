// Package utils holds small helpers shared by the transport layer: the
// owner context key, bearer token handling, JSON responses, and trace ids.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values set here cannot
// collide with string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// OwnerCtxKey is the context key under which the auth middleware stores the
// authenticated owner id (int64).
var OwnerCtxKey = contextKey("owner")

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner int64) context.Context {
	return context.WithValue(ctx, OwnerCtxKey, owner)
}

// OwnerFromContext returns the owner id stored by [WithOwner]. ok is false
// when the value is missing or has an unexpected type.
func OwnerFromContext(ctx context.Context) (int64, bool) {
	owner, ok := ctx.Value(OwnerCtxKey).(int64)
	return owner, ok
}
