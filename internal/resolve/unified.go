// ABOUTME: Unified login dispatcher for users and publisher houses
// ABOUTME: Admin identities are refused even when their tokens are valid

package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/store"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

// recordLookup confirms that the entity behind a verified token still
// exists and is active.
type recordLookup interface {
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetPublisherByID(ctx context.Context, id string) (*store.Publisher, error)
}

// Dispatcher is the unified entry point serving user and publisher
// logins without a declared kind. Admins are deliberately excluded.
type Dispatcher struct {
	users      *UserResolver
	publishers *PublisherResolver
	codec      *token.Codec
	records    recordLookup
}

// NewDispatcher creates a unified dispatcher over the two resolvers it
// serves. The record lookup backs ResolveIdentity.
func NewDispatcher(users *UserResolver, publishers *PublisherResolver, codec *token.Codec, records recordLookup) *Dispatcher {
	return &Dispatcher{
		users:      users,
		publishers: publishers,
		codec:      codec,
		records:    records,
	}
}

// Login attempts the user resolver first, then the publisher resolver,
// returning the first success. Both failures collapse into a single
// generic ErrInvalidCredentials so callers cannot tell which resolver
// almost matched. The identifier is a username for users and an email
// for publisher houses.
func (d *Dispatcher) Login(ctx context.Context, identifier, plaintext string) (claims.ClaimSet, error) {
	userCS, err := d.users.Login(ctx, identifier, plaintext)
	if err == nil {
		return userCS, nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	pubCS, err := d.publishers.Login(ctx, identifier, plaintext)
	if err == nil {
		return pubCS, nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	return nil, ErrInvalidCredentials
}

// LoginAs skips the ordering and calls the named resolver directly.
// The admin kind is not served here and fails with ErrUnsupportedKind.
func (d *Dispatcher) LoginAs(ctx context.Context, kind claims.EntityType, identifier, plaintext string) (claims.ClaimSet, error) {
	switch kind {
	case claims.EntityUser:
		return d.users.Login(ctx, identifier, plaintext)
	case claims.EntityPublisher:
		return d.publishers.Login(ctx, identifier, plaintext)
	case claims.EntityAdmin:
		return nil, fmt.Errorf("%w: admin login is served separately", ErrUnsupportedKind)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

// ResolveIdentity verifies a bearer token and returns its claim set
// after confirming the backing record still exists and is active.
// Admin-shaped tokens always fail with ErrAdminNotAllowed, even when
// the token itself verifies — this is a hard rule of the unified
// surface, not a default.
func (d *Dispatcher) ResolveIdentity(ctx context.Context, tokenString string) (claims.ClaimSet, error) {
	cs, err := d.codec.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	switch v := cs.(type) {
	case claims.AdminClaims:
		return nil, ErrAdminNotAllowed

	case claims.UserClaims:
		u, err := d.records.GetUserByID(ctx, v.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("looking up user: %w", err)
		}
		if !u.IsActive {
			return nil, ErrInvalidCredentials
		}
		return cs, nil

	case claims.PublisherClaims:
		p, err := d.records.GetPublisherByID(ctx, v.PublisherHouseID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("looking up publisher: %w", err)
		}
		if !p.IsActive {
			return nil, ErrInvalidCredentials
		}
		return cs, nil
	}

	return nil, token.ErrMalformed
}
