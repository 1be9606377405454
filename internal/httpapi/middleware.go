// ABOUTME: Bearer-token middleware wiring the guard into echo routes
// ABOUTME: Authenticated principals ride the request context

package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/guard"
)

// bearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func bearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	tok := strings.TrimPrefix(authHeader, "Bearer ")
	if tok == "" {
		return "", "empty token"
	}
	return tok, ""
}

// requireAuth authenticates the bearer token through the guard and
// applies the given requirements. The resulting principal is attached
// to the request context for handlers.
func (s *Server) requireAuth(reqs ...guard.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, errMsg := bearerToken(c.Request().Header.Get("Authorization"))
			if errMsg != "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: errMsg})
			}

			p, err := s.guard.Authorize(tok, reqs...)
			if err != nil {
				return writeError(c, err)
			}

			ctx := guard.WithPrincipal(c.Request().Context(), p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// requireUnifiedAuth authenticates via the unified dispatcher, which
// refuses admin tokens and re-checks the backing record.
func (s *Server) requireUnifiedAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, errMsg := bearerToken(c.Request().Header.Get("Authorization"))
			if errMsg != "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: errMsg})
			}

			cs, err := s.dispatcher.ResolveIdentity(c.Request().Context(), tok)
			if err != nil {
				return writeError(c, err)
			}

			ctx := guard.WithPrincipal(c.Request().Context(), guard.Principal{Claims: cs})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
