// ABOUTME: Admin resolver gated by a process-configured registration code
// ABOUTME: Permission flags are always derived from the role, never from input

package resolve

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/password"
	"github.com/shelfwise/shelfwise-identity/internal/store"
)

// AdminStore defines the record store operations the admin resolver needs.
type AdminStore interface {
	CreateAdmin(ctx context.Context, a *store.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*store.Admin, error)
	TouchAdminLogin(ctx context.Context, id string) error
}

// AdminResolver authenticates and registers system administrators.
// Registration is gated by a shared secret code configured at startup;
// the code is a gate, not a per-admin attribute.
type AdminResolver struct {
	admins           AdminStore
	registrationCode string
	logger           *slog.Logger
}

// NewAdminResolver creates an admin resolver. registrationCode is the
// process-configured shared secret required to register.
func NewAdminResolver(admins AdminStore, registrationCode string) *AdminResolver {
	return &AdminResolver{
		admins:           admins,
		registrationCode: registrationCode,
		logger:           slog.Default().With("component", "resolve.admin"),
	}
}

// RegisterAdminParams holds the input for admin registration. Any
// caller-supplied permission flags are ignored; permissions come from
// the static matrix for the role.
type RegisterAdminParams struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
	Code        string
	Role        claims.AdminRole
}

// Register creates a new admin and returns its claim set. A missing or
// wrong registration code fails with ErrInvalidRegistrationCode before
// anything else is checked.
func (r *AdminResolver) Register(ctx context.Context, p RegisterAdminParams) (claims.AdminClaims, error) {
	if r.registrationCode == "" ||
		subtle.ConstantTimeCompare([]byte(p.Code), []byte(r.registrationCode)) != 1 {
		return claims.AdminClaims{}, ErrInvalidRegistrationCode
	}

	if p.Username == "" || p.Email == "" || p.Password == "" {
		return claims.AdminClaims{}, fmt.Errorf("%w: username, email, and password required", claims.ErrMalformedClaims)
	}
	if !claims.ValidAdminRole(p.Role) {
		return claims.AdminClaims{}, fmt.Errorf("%w: unknown admin role %q", claims.ErrMalformedClaims, p.Role)
	}

	digest, err := password.Hash(p.Password)
	if err != nil {
		return claims.AdminClaims{}, fmt.Errorf("hashing password: %w", err)
	}

	perms := claims.PermissionsFor(p.Role)
	a := &store.Admin{
		Username:            p.Username,
		Email:               p.Email,
		PhoneNumber:         p.PhoneNumber,
		PasswordHash:        digest,
		Role:                string(p.Role),
		IsSuperAdmin:        p.Role == claims.RoleSuperAdmin,
		CanManageUsers:      perms.CanManageUsers,
		CanManagePublishers: perms.CanManagePublishers,
		CanManageContent:    perms.CanManageContent,
		CanManageSystem:     perms.CanManageSystem,
		IsActive:            true,
	}
	if err := r.admins.CreateAdmin(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return claims.AdminClaims{}, ErrDuplicateIdentity
		}
		return claims.AdminClaims{}, fmt.Errorf("creating admin: %w", err)
	}

	r.logger.Info("admin registered", "admin_id", a.ID, "role", a.Role)
	return claims.NewAdminClaims(a.ID, a.Username, p.Role)
}

// Login verifies username/password and returns the admin's claim set.
// Permissions are derived from the stored role, not from the stored
// capability columns. Unknown identity and wrong password fail
// identically.
func (r *AdminResolver) Login(ctx context.Context, username, plaintext string) (claims.AdminClaims, error) {
	a, err := r.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			password.CompareDummy(plaintext)
			return claims.AdminClaims{}, ErrInvalidCredentials
		}
		return claims.AdminClaims{}, fmt.Errorf("looking up admin: %w", err)
	}

	if !password.Verify(plaintext, a.PasswordHash) {
		return claims.AdminClaims{}, ErrInvalidCredentials
	}

	if !a.IsActive {
		return claims.AdminClaims{}, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp must not block the login.
	if err := r.admins.TouchAdminLogin(ctx, a.ID); err != nil {
		r.logger.Warn("failed to record admin login", "admin_id", a.ID, "error", err)
	}

	return claims.NewAdminClaims(a.ID, a.Username, claims.AdminRole(a.Role))
}
