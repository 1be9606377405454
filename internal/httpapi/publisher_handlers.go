// ABOUTME: Handlers for the publisher house surface
// ABOUTME: Email is the login identifier, matching the resolver

package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
)

type publisherRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type publisherLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type publisherTokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	PublisherHouseID string `json:"publisher_house_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
}

type publisherProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) publisherToken(c echo.Context, cs claims.PublisherClaims) error {
	tok, err := s.issueToken(cs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, publisherTokenResponse{
		AccessToken:      tok,
		TokenType:        "bearer",
		PublisherHouseID: cs.PublisherHouseID,
		Name:             cs.Name,
		Email:            cs.Email,
	})
}

func (s *Server) handlePublisherRegister(c echo.Context) error {
	var req publisherRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.publishers.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.publisherToken(c, cs)
}

func (s *Server) handlePublisherLogin(c echo.Context) error {
	var req publisherLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.publishers.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.publisherToken(c, cs)
}

func (s *Server) handlePublisherMe(c echo.Context) error {
	p := guard.MustFromContext(c.Request().Context())

	pub, err := s.store.GetPublisherByID(c.Request().Context(), p.Subject())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, publisherProfileResponse{
		ID:        pub.ID,
		Name:      pub.Name,
		Email:     pub.Email,
		IsActive:  pub.IsActive,
		CreatedAt: pub.CreatedAt,
	})
}
