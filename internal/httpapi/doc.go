// ABOUTME: Package documentation for the HTTP API surface
// ABOUTME: Describes route groups, auth middleware, and error mapping

// Package httpapi exposes the identity service over HTTP using echo.
//
// Routes are grouped by principal kind: /auth/* for users, /publishers/*
// for publisher houses, /admin/* for administrators, and the unified
// /login and /me surface that serves users and publishers without a
// declared kind. Admin-only routes additionally require a capability
// from the static permission matrix.
//
// Domain errors map onto HTTP statuses in one place (httpStatusFor):
// credential and token failures are 401, conflicts and bad input 400,
// policy refusals 403. Response bodies are {"error": "..."} on failure
// and mirror the original platform's token payloads on success.
package httpapi
