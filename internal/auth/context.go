package auth

import "context"

type contextKey struct{}

// NewContext returns a context carrying the authenticated identity.
func NewContext(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext extracts the authenticated identity set by the auth
// middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	return identity, ok
}
