// Package token signs claim sets into opaque bearer tokens and verifies
// them back, using HS256 with a single process-wide secret.
//
// Verification is all-or-nothing: no claim field is exposed to callers
// until the signature and expiry have been checked. Failures map to
// three sentinel errors:
//
//   - ErrInvalidSignature: the token was tampered with or signed with a
//     different key
//   - ErrExpired: the token is structurally valid but past its expiry
//   - ErrMalformed: the token cannot be decoded at all, or a verified
//     payload is missing fields of its claim shape
//
// Rotating the secret invalidates all outstanding tokens; there is no
// key-rotation grace window.
package token
