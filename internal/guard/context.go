// ABOUTME: Context propagation for authenticated principals
// ABOUTME: Provides WithPrincipal/FromContext for request handlers

package guard

import "context"

// principalKey is the key type for storing a Principal in context.Context.
type principalKey struct{}

// WithPrincipal returns a new context with the principal attached.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from the context. The second
// return is false if no principal is attached.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustFromContext retrieves the principal from the context, panicking
// if not present. For handlers that only run behind auth middleware.
func MustFromContext(ctx context.Context) Principal {
	p, ok := FromContext(ctx)
	if !ok {
		panic("guard: principal not found in context")
	}
	return p
}
