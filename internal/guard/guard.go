// ABOUTME: Authorization guard applying kind and capability requirements
// ABOUTME: Every denial collapses into ErrForbidden

package guard

import (
	"errors"
	"fmt"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

// ErrForbidden is returned when an authenticated principal fails a
// requirement. Which requirement failed is never disclosed.
var ErrForbidden = errors.New("forbidden")

// Principal is an authenticated identity as seen by authorization checks.
type Principal struct {
	Claims claims.ClaimSet
}

// Kind returns the principal's kind.
func (p Principal) Kind() claims.PrincipalKind { return p.Claims.Kind() }

// Subject returns the principal's stable ID.
func (p Principal) Subject() string { return p.Claims.Subject() }

// Requirement is a single authorization predicate over a principal.
// It returns nil to allow and an error to deny.
type Requirement func(p Principal) error

// RequireEntity allows only principals of the given entity type.
func RequireEntity(et claims.EntityType) Requirement {
	return func(p Principal) error {
		if p.Claims.EntityType() != et {
			return fmt.Errorf("%w: %s entity required", ErrForbidden, et)
		}
		return nil
	}
}

// RequireKind allows only principals of one of the given kinds.
func RequireKind(kinds ...claims.PrincipalKind) Requirement {
	return func(p Principal) error {
		for _, k := range kinds {
			if p.Kind() == k {
				return nil
			}
		}
		return fmt.Errorf("%w: principal kind %s not permitted", ErrForbidden, p.Kind())
	}
}

// RequireCapability allows only admin principals whose permission set
// includes the capability. Non-admin principals always fail; admin
// status alone grants nothing.
func RequireCapability(cap claims.Capability) Requirement {
	return func(p Principal) error {
		ac, ok := p.Claims.(claims.AdminClaims)
		if !ok {
			return fmt.Errorf("%w: admin principal required", ErrForbidden)
		}
		if !ac.Permissions.Has(cap) {
			return fmt.Errorf("%w: missing capability %s", ErrForbidden, cap)
		}
		return nil
	}
}

// Guard verifies bearer tokens and applies requirements to the result.
type Guard struct {
	codec *token.Codec
}

// NewGuard creates a guard over the given token codec.
func NewGuard(codec *token.Codec) *Guard {
	return &Guard{codec: codec}
}

// Authorize verifies the token and applies every requirement in order.
// Token failures return the codec's errors; requirement failures return
// ErrForbidden.
func (g *Guard) Authorize(tokenString string, reqs ...Requirement) (Principal, error) {
	cs, err := g.codec.Verify(tokenString)
	if err != nil {
		return Principal{}, err
	}
	p := Principal{Claims: cs}
	for _, req := range reqs {
		if err := req(p); err != nil {
			return Principal{}, err
		}
	}
	return p, nil
}

// Check applies requirements to an already-verified principal.
func Check(p Principal, reqs ...Requirement) error {
	for _, req := range reqs {
		if err := req(p); err != nil {
			return err
		}
	}
	return nil
}
