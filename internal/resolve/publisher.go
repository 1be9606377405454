// ABOUTME: Publisher house resolver for registration and login
// ABOUTME: Email is the unique identity key, not username

package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/password"
	"github.com/shelfwise/shelfwise-identity/internal/store"
)

// PublisherStore defines the record store operations the publisher
// resolver needs.
type PublisherStore interface {
	CreatePublisher(ctx context.Context, p *store.Publisher) error
	GetPublisherByID(ctx context.Context, id string) (*store.Publisher, error)
	GetPublisherByEmail(ctx context.Context, email string) (*store.Publisher, error)
}

// PublisherResolver authenticates and registers publisher houses.
type PublisherResolver struct {
	publishers PublisherStore
	logger     *slog.Logger
}

// NewPublisherResolver creates a publisher resolver backed by the given store.
func NewPublisherResolver(publishers PublisherStore) *PublisherResolver {
	return &PublisherResolver{
		publishers: publishers,
		logger:     slog.Default().With("component", "resolve.publisher"),
	}
}

// Register creates a new publisher house and returns its claim set.
// Name and email are both unique; either conflict fails with
// ErrDuplicateIdentity.
func (r *PublisherResolver) Register(ctx context.Context, name, email, plaintext string) (claims.PublisherClaims, error) {
	if name == "" || email == "" || plaintext == "" {
		return claims.PublisherClaims{}, fmt.Errorf("%w: name, email, and password required", claims.ErrMalformedClaims)
	}

	digest, err := password.Hash(plaintext)
	if err != nil {
		return claims.PublisherClaims{}, fmt.Errorf("hashing password: %w", err)
	}

	p := &store.Publisher{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		IsActive:     true,
	}
	if err := r.publishers.CreatePublisher(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return claims.PublisherClaims{}, ErrDuplicateIdentity
		}
		return claims.PublisherClaims{}, fmt.Errorf("creating publisher: %w", err)
	}

	r.logger.Info("publisher registered", "publisher_id", p.ID, "name", p.Name)
	return claims.NewPublisherClaims(p.ID, p.Name, p.Email)
}

// Login verifies email/password and returns the publisher's claim set.
// Unknown identity and wrong password fail identically.
func (r *PublisherResolver) Login(ctx context.Context, email, plaintext string) (claims.PublisherClaims, error) {
	p, err := r.publishers.GetPublisherByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			password.CompareDummy(plaintext)
			return claims.PublisherClaims{}, ErrInvalidCredentials
		}
		return claims.PublisherClaims{}, fmt.Errorf("looking up publisher: %w", err)
	}

	if !password.Verify(plaintext, p.PasswordHash) {
		return claims.PublisherClaims{}, ErrInvalidCredentials
	}

	return claims.NewPublisherClaims(p.ID, p.Name, p.Email)
}
