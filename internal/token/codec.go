// ABOUTME: HS256 bearer token codec for typed claim sets
// ABOUTME: Issue serializes and signs claims; Verify is all-or-nothing

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
)

// Codec errors
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("malformed token")
)

// Codec signs claim sets into opaque bearer tokens and verifies them
// back. The secret is set once at construction and never mutated, so a
// Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a codec signing with the given secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// Issue serializes the claim set plus issued-at/expiry timestamps and
// signs it into an opaque token string.
func (c *Codec) Issue(cs claims.ClaimSet, ttl time.Duration) (string, error) {
	now := c.now()
	mc := jwt.MapClaims{
		"sub":         cs.Subject(),
		"entity_type": string(cs.EntityType()),
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}

	switch v := cs.(type) {
	case claims.UserClaims:
		mc["user_id"] = v.UserID
		mc["role"] = string(v.Role)
	case claims.PublisherClaims:
		mc["publisher_house_id"] = v.PublisherHouseID
		mc["name"] = v.Name
		mc["email"] = v.Email
	case claims.AdminClaims:
		mc["admin_id"] = v.AdminID
		mc["username"] = v.Username
		mc["role"] = string(v.Role)
		mc["is_super_admin"] = v.IsSuperAdmin
		mc["permissions"] = map[string]bool{
			string(claims.CapManageUsers):      v.Permissions.CanManageUsers,
			string(claims.CapManagePublishers): v.Permissions.CanManagePublishers,
			string(claims.CapManageContent):    v.Permissions.CanManageContent,
			string(claims.CapManageSystem):     v.Permissions.CanManageSystem,
		}
	default:
		return "", fmt.Errorf("%w: unsupported claim set %T", claims.ErrMalformedClaims, cs)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.secret)
}

// Verify validates the signature and expiry, then rebuilds the typed
// claim set from the payload. No claim field is returned unless the
// whole token checks out.
func (c *Codec) Verify(tokenString string) (claims.ClaimSet, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}

	if !tok.Valid {
		return nil, ErrInvalidSignature
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	return decodeClaims(mc)
}

// decodeClaims rebuilds a typed claim set from a verified payload.
// Admin permission flags are always re-derived from the role so the
// matrix invariant holds regardless of what the payload carried.
func decodeClaims(mc jwt.MapClaims) (claims.ClaimSet, error) {
	entityType, _ := mc["entity_type"].(string)

	switch claims.EntityType(entityType) {
	case claims.EntityUser:
		userID, _ := mc["user_id"].(string)
		role, _ := mc["role"].(string)
		cs, err := claims.NewUserClaims(userID, claims.UserRole(role))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return cs, nil

	case claims.EntityPublisher:
		id, _ := mc["publisher_house_id"].(string)
		name, _ := mc["name"].(string)
		email, _ := mc["email"].(string)
		cs, err := claims.NewPublisherClaims(id, name, email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return cs, nil

	case claims.EntityAdmin:
		id, _ := mc["admin_id"].(string)
		username, _ := mc["username"].(string)
		role, _ := mc["role"].(string)
		cs, err := claims.NewAdminClaims(id, username, claims.AdminRole(role))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return cs, nil
	}

	return nil, fmt.Errorf("%w: unknown entity_type %q", ErrMalformed, entityType)
}
