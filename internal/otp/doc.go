// Package otp implements one-time-password generation and verification
// for email-verified registration.
//
// Codes are six digits, single-use, and time-limited. The Store
// interface owns persistence (in-memory for single-process deployments,
// Redis for shared ones); the Sender interface owns delivery, which is
// an external concern — the default LogSender only logs.
package otp
