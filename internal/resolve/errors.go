// ABOUTME: Error taxonomy for principal resolution and unified dispatch
// ABOUTME: One generic credential error regardless of which check failed

package resolve

import "errors"

var (
	// ErrInvalidCredentials covers both unknown identity and wrong
	// password. Callers must never be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateIdentity is returned when registration conflicts with
	// an existing record.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrRoleMismatch is returned when credentials are correct but the
	// principal does not hold the requested role.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrInvalidRegistrationCode is returned when admin registration is
	// attempted without the configured code.
	ErrInvalidRegistrationCode = errors.New("invalid registration code")

	// ErrInvalidOTP is returned when a one-time code is wrong, expired,
	// or already consumed.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrUnsupportedKind is returned by the unified dispatcher when the
	// requested principal kind is not served by the unified surface.
	ErrUnsupportedKind = errors.New("unsupported principal kind")

	// ErrAdminNotAllowed is returned by the unified dispatcher for
	// admin-shaped tokens, valid or not. Admins authenticate separately.
	ErrAdminNotAllowed = errors.New("admin authentication not allowed on unified surface")
)
