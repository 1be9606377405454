// ABOUTME: User resolver for reader/writer registration, login, and OTP flow
// ABOUTME: Username is the identity key; email verification rides on OTP

package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/otp"
	"github.com/shelfwise/shelfwise-identity/internal/password"
	"github.com/shelfwise/shelfwise-identity/internal/store"
)

// UserStore defines the record store operations the user resolver needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *store.User) error
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	SetUserRole(ctx context.Context, id, role string) error
	SetUserVerified(ctx context.Context, id string) error
}

// UserResolver authenticates and registers end users (readers/writers).
type UserResolver struct {
	users  UserStore
	otp    *otp.Service
	logger *slog.Logger
}

// NewUserResolver creates a user resolver backed by the given store and
// OTP service.
func NewUserResolver(users UserStore, otpSvc *otp.Service) *UserResolver {
	return &UserResolver{
		users:  users,
		otp:    otpSvc,
		logger: slog.Default().With("component", "resolve.user"),
	}
}

// RegisterUserParams holds the input for user registration.
type RegisterUserParams struct {
	Username    string
	FullName    string
	PhoneNumber string
	Email       string
	Password    string
	Role        claims.UserRole
}

// Register creates a new user and returns its claim set. Duplicate
// usernames fail with ErrDuplicateIdentity.
func (r *UserResolver) Register(ctx context.Context, p RegisterUserParams) (claims.UserClaims, error) {
	if p.Username == "" || p.Password == "" {
		return claims.UserClaims{}, fmt.Errorf("%w: username and password required", claims.ErrMalformedClaims)
	}
	if !claims.ValidUserRole(p.Role) {
		return claims.UserClaims{}, fmt.Errorf("%w: unknown user role %q", claims.ErrMalformedClaims, p.Role)
	}

	digest, err := password.Hash(p.Password)
	if err != nil {
		return claims.UserClaims{}, fmt.Errorf("hashing password: %w", err)
	}

	u := &store.User{
		Username:     p.Username,
		FullName:     p.FullName,
		PhoneNumber:  p.PhoneNumber,
		Email:        p.Email,
		PasswordHash: digest,
		Role:         string(p.Role),
		IsActive:     true,
	}
	if err := r.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return claims.UserClaims{}, ErrDuplicateIdentity
		}
		return claims.UserClaims{}, fmt.Errorf("creating user: %w", err)
	}

	r.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return claims.NewUserClaims(u.ID, p.Role)
}

// Login verifies username/password and returns the user's claim set.
// Unknown identity and wrong password fail identically.
func (r *UserResolver) Login(ctx context.Context, username, plaintext string) (claims.UserClaims, error) {
	u, err := r.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			password.CompareDummy(plaintext)
			return claims.UserClaims{}, ErrInvalidCredentials
		}
		return claims.UserClaims{}, fmt.Errorf("looking up user: %w", err)
	}

	if !password.Verify(plaintext, u.PasswordHash) {
		return claims.UserClaims{}, ErrInvalidCredentials
	}

	return claims.NewUserClaims(u.ID, claims.UserRole(u.Role))
}

// LoginAs verifies credentials and additionally requires the user to
// hold the expected role, failing with ErrRoleMismatch otherwise.
func (r *UserResolver) LoginAs(ctx context.Context, username, plaintext string, role claims.UserRole) (claims.UserClaims, error) {
	cs, err := r.Login(ctx, username, plaintext)
	if err != nil {
		return claims.UserClaims{}, err
	}
	if cs.Role != role {
		return claims.UserClaims{}, fmt.Errorf("%w: user does not have %s role", ErrRoleMismatch, role)
	}
	return cs, nil
}

// SendOTP issues a one-time code to the given email address.
func (r *UserResolver) SendOTP(ctx context.Context, email string) error {
	return r.otp.Send(ctx, email)
}

// VerifyOTP consumes the pending code for the email. On success the
// matching user record, if any, is marked email-verified.
func (r *UserResolver) VerifyOTP(ctx context.Context, email, code string) error {
	ok, err := r.otp.Verify(ctx, email, code)
	if err != nil {
		return fmt.Errorf("verifying OTP: %w", err)
	}
	if !ok {
		return ErrInvalidOTP
	}

	u, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Verification before registration is allowed; nothing to mark.
			return nil
		}
		return fmt.Errorf("looking up user: %w", err)
	}
	if err := r.users.SetUserVerified(ctx, u.ID); err != nil {
		return fmt.Errorf("marking user verified: %w", err)
	}

	r.logger.Info("user email verified", "user_id", u.ID)
	return nil
}

// UpgradeToWriter promotes a reader to the writer role. Only readers can
// upgrade; any other role fails with ErrRoleMismatch.
func (r *UserResolver) UpgradeToWriter(ctx context.Context, userID string) (claims.UserClaims, error) {
	u, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return claims.UserClaims{}, ErrInvalidCredentials
		}
		return claims.UserClaims{}, fmt.Errorf("looking up user: %w", err)
	}

	if claims.UserRole(u.Role) != claims.RoleReader {
		return claims.UserClaims{}, fmt.Errorf("%w: only readers can upgrade to writer", ErrRoleMismatch)
	}

	if err := r.users.SetUserRole(ctx, u.ID, string(claims.RoleWriter)); err != nil {
		return claims.UserClaims{}, fmt.Errorf("upgrading role: %w", err)
	}

	r.logger.Info("user upgraded to writer", "user_id", u.ID)
	return claims.NewUserClaims(u.ID, claims.RoleWriter)
}
