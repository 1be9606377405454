// ABOUTME: Handlers for the admin surface, including capability-guarded lists
// ABOUTME: Caller-supplied permission flags are accepted but never honored

package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
	"github.com/shelfwise/shelfwise-identity/internal/resolve"
)

type adminRegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Code        string `json:"code"`
	Role        string `json:"role"`

	// Accepted for wire compatibility and deliberately ignored; the
	// permission matrix is the only source of capability flags.
	Permissions map[string]bool `json:"permissions,omitempty"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminTokenResponse struct {
	AccessToken  string               `json:"access_token"`
	TokenType    string               `json:"token_type"`
	Role         string               `json:"role"`
	EntityType   string               `json:"entity_type"`
	AdminID      string               `json:"admin_id"`
	Username     string               `json:"username"`
	IsSuperAdmin bool                 `json:"is_super_admin"`
	Permissions  claims.PermissionSet `json:"permissions"`
}

type adminProfileResponse struct {
	ID           string               `json:"id"`
	Username     string               `json:"username"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	IsSuperAdmin bool                 `json:"is_super_admin"`
	Permissions  claims.PermissionSet `json:"permissions"`
	IsActive     bool                 `json:"is_active"`
	LastLogin    *time.Time           `json:"last_login,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func (s *Server) adminToken(c echo.Context, cs claims.AdminClaims) error {
	tok, err := s.issueToken(cs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, adminTokenResponse{
		AccessToken:  tok,
		TokenType:    "bearer",
		Role:         string(cs.Role),
		EntityType:   string(claims.EntityAdmin),
		AdminID:      cs.AdminID,
		Username:     cs.Username,
		IsSuperAdmin: cs.IsSuperAdmin,
		Permissions:  cs.Permissions,
	})
}

func (s *Server) handleAdminRegister(c echo.Context) error {
	var req adminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.admins.Register(c.Request().Context(), resolve.RegisterAdminParams{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Code:        req.Code,
		Role:        claims.AdminRole(req.Role),
	})
	if err != nil {
		return writeError(c, err)
	}
	return s.adminToken(c, cs)
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.admins.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.adminToken(c, cs)
}

func (s *Server) handleAdminMe(c echo.Context) error {
	p := guard.MustFromContext(c.Request().Context())

	ac, ok := p.Claims.(claims.AdminClaims)
	if !ok {
		return c.JSON(http.StatusForbidden, errorBody{Error: "admin principal required"})
	}

	a, err := s.store.GetAdminByID(c.Request().Context(), p.Subject())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, adminProfileResponse{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		Role:         a.Role,
		IsSuperAdmin: ac.IsSuperAdmin,
		Permissions:  ac.Permissions,
		IsActive:     a.IsActive,
		LastLogin:    a.LastLogin,
		CreatedAt:    a.CreatedAt,
	})
}

func (s *Server) handleAdminListUsers(c echo.Context) error {
	users, err := s.store.ListUsers(c.Request().Context(), listLimit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]userProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userProfileResponse{
			ID:         u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			Email:      u.Email,
			Role:       u.Role,
			IsActive:   u.IsActive,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAdminListPublishers(c echo.Context) error {
	publishers, err := s.store.ListPublishers(c.Request().Context(), listLimit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]publisherProfileResponse, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, publisherProfileResponse{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			IsActive:  p.IsActive,
			CreatedAt: p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
