// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets values; services and stores read
// them without importing net/http. Tests inject a fixed clock with WithTime
// to make date-dependent logic (tariff resolution, enrollment timestamps)
// deterministic.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	usuarioIDKey   struct{}
)

// RequestID retrieves the request ID set by middleware, or "" if unset.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Now returns the request time if one was injected, falling back to the wall
// clock. Services use this instead of time.Now so tests can pin the clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request clock, mainly for tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// UsuarioID retrieves the authenticated system-account ID, or 0 if unset.
func UsuarioID(ctx context.Context) int64 {
	if id, ok := ctx.Value(usuarioIDKey{}).(int64); ok {
		return id
	}
	return 0
}

// WithUsuarioID injects the authenticated system-account ID.
func WithUsuarioID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, usuarioIDKey{}, id)
}
