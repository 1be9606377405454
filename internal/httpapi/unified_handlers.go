// ABOUTME: Handlers for the unified login and identity surface
// ABOUTME: Serves users and publishers; admins are refused by design of the dispatcher

package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
)

type unifiedLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type unifiedTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	EntityType  string `json:"entity_type"`
	Kind        string `json:"kind"`
	SubjectID   string `json:"subject_id"`
}

func (s *Server) unifiedToken(c echo.Context, cs claims.ClaimSet) error {
	tok, err := s.issueToken(cs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, unifiedTokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		EntityType:  string(cs.EntityType()),
		Kind:        string(cs.Kind()),
		SubjectID:   cs.Subject(),
	})
}

func (s *Server) handleUnifiedLogin(c echo.Context) error {
	var req unifiedLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.dispatcher.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.unifiedToken(c, cs)
}

func (s *Server) handleUnifiedLoginAs(c echo.Context) error {
	kind := claims.EntityType(c.Param("kind"))

	var req unifiedLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.dispatcher.LoginAs(c.Request().Context(), kind, req.Identifier, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.unifiedToken(c, cs)
}

type unifiedIdentityResponse struct {
	EntityType string `json:"entity_type"`
	Kind       string `json:"kind"`
	SubjectID  string `json:"subject_id"`
}

func (s *Server) handleUnifiedMe(c echo.Context) error {
	p := guard.MustFromContext(c.Request().Context())

	return c.JSON(http.StatusOK, unifiedIdentityResponse{
		EntityType: string(p.Claims.EntityType()),
		Kind:       string(p.Kind()),
		SubjectID:  p.Subject(),
	})
}
