// ABOUTME: Handlers for the user surface: register, login, OTP, upgrade
// ABOUTME: Token responses mirror the platform's payload shapes

package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
	"github.com/shelfwise/shelfwise-identity/internal/resolve"
)

type userRegisterRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type userLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	UserID      string `json:"user_id"`
}

type userProfileResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (s *Server) userToken(c echo.Context, cs claims.UserClaims) error {
	tok, err := s.issueToken(cs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userTokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		Role:        string(cs.Role),
		UserID:      cs.UserID,
	})
}

func (s *Server) handleUserRegister(c echo.Context) error {
	var req userRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}
	role := claims.UserRole(req.Role)
	if req.Role == "" {
		role = claims.RoleReader
	}

	cs, err := s.users.Register(c.Request().Context(), resolve.RegisterUserParams{
		Username:    req.Username,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Role:        role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return s.userToken(c, cs)
}

func (s *Server) handleUserLogin(c echo.Context) error {
	var req userLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return s.userToken(c, cs)
}

func (s *Server) handleUserLoginAs(c echo.Context) error {
	role := claims.UserRole(c.Param("role"))
	if !claims.ValidUserRole(role) {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "unknown role"})
	}

	var req userLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	cs, err := s.users.LoginAs(c.Request().Context(), req.Username, req.Password, role)
	if err != nil {
		return writeError(c, err)
	}
	return s.userToken(c, cs)
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleSendOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "email required"})
	}
	if err := s.users.SendOTP(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent"})
}

func (s *Server) handleVerifyOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "email and code required"})
	}
	if err := s.users.VerifyOTP(c.Request().Context(), req.Email, req.Code); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (s *Server) handleUserMe(c echo.Context) error {
	p := guard.MustFromContext(c.Request().Context())

	u, err := s.store.GetUserByID(c.Request().Context(), p.Subject())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userProfileResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	})
}

func (s *Server) handleUpgradeToWriter(c echo.Context) error {
	p := guard.MustFromContext(c.Request().Context())

	cs, err := s.users.UpgradeToWriter(c.Request().Context(), p.Subject())
	if err != nil {
		return writeError(c, err)
	}
	// A fresh token so the caller's credentials reflect the new role.
	return s.userToken(c, cs)
}
