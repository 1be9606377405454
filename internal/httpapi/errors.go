// ABOUTME: Maps domain errors onto HTTP statuses in one place
// ABOUTME: Keeps handlers free of status-code case analysis

package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
	"github.com/shelfwise/shelfwise-identity/internal/resolve"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

// errorBody is the uniform failure response shape.
type errorBody struct {
	Error string `json:"error"`
}

// httpStatusFor maps a domain error to an HTTP status code.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, resolve.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidSignature),
		errors.Is(err, token.ErrExpired),
		errors.Is(err, token.ErrMalformed):
		return http.StatusUnauthorized

	case errors.Is(err, resolve.ErrRoleMismatch),
		errors.Is(err, resolve.ErrInvalidRegistrationCode),
		errors.Is(err, resolve.ErrAdminNotAllowed),
		errors.Is(err, guard.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, resolve.ErrDuplicateIdentity),
		errors.Is(err, resolve.ErrInvalidOTP),
		errors.Is(err, resolve.ErrUnsupportedKind),
		errors.Is(err, claims.ErrMalformedClaims):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError sends the uniform failure body for a domain error. Internal
// errors are masked so storage details never leak to clients.
func writeError(c echo.Context, err error) error {
	status := httpStatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(status, errorBody{Error: msg})
}
