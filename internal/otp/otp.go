// ABOUTME: OTP service generating, storing, and verifying one-time codes
// ABOUTME: Codes are six digits, single-use, and time-limited

package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"
)

const codeDigits = 6

// Store persists pending codes. Put overwrites any pending code for the
// same target. Consume atomically checks the code and removes it on
// match, so each code verifies at most once.
type Store interface {
	Put(ctx context.Context, target, code string, ttl time.Duration) error
	Consume(ctx context.Context, target, code string) (bool, error)
}

// Sender delivers a code to a target. Delivery (email, SMS) is owned by
// an external collaborator; this package only defines the capability.
type Sender interface {
	Send(ctx context.Context, target, code string) error
}

// LogSender is a Sender that only logs. Useful for development and for
// deployments where delivery is handled out of band.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender() *LogSender {
	return &LogSender{logger: slog.Default().With("component", "otp")}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, target, code string) error {
	s.logger.Info("OTP issued", "target", target, "code", code)
	return nil
}

// Service generates, stores, and verifies one-time codes.
type Service struct {
	store  Store
	sender Sender
	ttl    time.Duration
}

// NewService creates an OTP service. Codes expire after ttl.
func NewService(store Store, sender Sender, ttl time.Duration) *Service {
	return &Service{store: store, sender: sender, ttl: ttl}
}

// Send generates a fresh code for the target, stores it with the
// configured expiry, and hands it to the sender.
func (s *Service) Send(ctx context.Context, target string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}
	if err := s.store.Put(ctx, target, code, s.ttl); err != nil {
		return fmt.Errorf("storing code: %w", err)
	}
	if err := s.sender.Send(ctx, target, code); err != nil {
		return fmt.Errorf("sending code: %w", err)
	}
	return nil
}

// Verify consumes the pending code for the target. It returns true only
// if the code matches and has not expired; the code is removed either
// way on a match.
func (s *Service) Verify(ctx context.Context, target, code string) (bool, error) {
	return s.store.Consume(ctx, target, code)
}

// generateCode returns a random six-digit code with leading zeros kept.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
