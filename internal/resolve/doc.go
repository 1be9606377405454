// Package resolve turns registration and login input into typed claim
// sets, one resolver per entity type, plus a unified dispatcher.
//
// # Resolvers
//
// Each resolver verifies credentials against the record store and
// returns a claim set on success:
//
//   - UserResolver: username-keyed readers and writers, with OTP-based
//     email verification
//   - PublisherResolver: email-keyed publisher houses
//   - AdminResolver: username-keyed admins gated by a registration code
//
// Password mismatch and unknown identity both fail with
// ErrInvalidCredentials, and the miss path burns a dummy hash
// comparison, so neither the error shape nor the response timing
// reveals whether an identity exists.
//
// # Unified Dispatcher
//
// The Dispatcher serves the shared login surface for users and
// publisher houses. It tries the user resolver first, then the
// publisher resolver, and collapses both failures into one generic
// ErrInvalidCredentials. Admin identities are refused outright: LoginAs
// rejects the admin kind with ErrUnsupportedKind, and ResolveIdentity
// fails admin-shaped tokens with ErrAdminNotAllowed even when the token
// itself is perfectly valid. Admins authenticate only through their own
// resolver.
//
// The user-before-publisher order is a compatibility policy, not a
// derived necessity; see DESIGN.md.
package resolve
