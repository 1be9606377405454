// ABOUTME: Package documentation for the authorization guard
// ABOUTME: Explains requirements, principals, and context propagation

// Package guard enforces authorization on already-authenticated
// principals. A Guard verifies a bearer token into a Principal and then
// applies a list of Requirements to it; the built-in requirements check
// principal kind and admin capabilities.
//
// All denials surface as ErrForbidden so callers cannot probe which
// requirement rejected them. Token-level failures keep their codec
// errors so transports can map them to 401 rather than 403.
//
// Handlers receive the Principal via the request context using
// WithPrincipal / FromContext.
package guard
