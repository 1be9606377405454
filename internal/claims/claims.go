// ABOUTME: Typed claim sets for the four principal kinds
// ABOUTME: Constructors validate required fields and derive admin permissions

package claims

import (
	"errors"
	"fmt"
)

// ErrMalformedClaims is returned when a constructor receives incomplete
// or invalid input.
var ErrMalformedClaims = errors.New("malformed claims")

// EntityType identifies which record store entity a claim set describes.
type EntityType string

const (
	EntityUser      EntityType = "user"
	EntityPublisher EntityType = "publisher"
	EntityAdmin     EntityType = "admin"
)

// PrincipalKind is the closed set of principal categories.
type PrincipalKind string

const (
	KindReader    PrincipalKind = "reader"
	KindWriter    PrincipalKind = "writer"
	KindPublisher PrincipalKind = "publisher"
	KindAdmin     PrincipalKind = "admin"
)

// UserRole is the sub-role of a user entity.
type UserRole string

const (
	RoleReader UserRole = "reader"
	RoleWriter UserRole = "writer"
)

// ValidUserRoles lists all valid user roles.
var ValidUserRoles = []UserRole{RoleReader, RoleWriter}

// ValidUserRole reports whether role is a known user role.
func ValidUserRole(role UserRole) bool {
	return role == RoleReader || role == RoleWriter
}

// AdminRole is the role of an admin entity.
type AdminRole string

const (
	RoleSuperAdmin     AdminRole = "super_admin"
	RoleContentAdmin   AdminRole = "content_admin"
	RoleUserAdmin      AdminRole = "user_admin"
	RolePublisherAdmin AdminRole = "publisher_admin"
)

// ValidAdminRoles lists all valid admin roles.
var ValidAdminRoles = []AdminRole{
	RoleSuperAdmin,
	RoleContentAdmin,
	RoleUserAdmin,
	RolePublisherAdmin,
}

// ValidAdminRole reports whether role is a known admin role.
func ValidAdminRole(role AdminRole) bool {
	switch role {
	case RoleSuperAdmin, RoleContentAdmin, RoleUserAdmin, RolePublisherAdmin:
		return true
	}
	return false
}

// ClaimSet is the identity payload carried by a signed token. The three
// concrete implementations are UserClaims, PublisherClaims and
// AdminClaims; consumers switch on the concrete type.
type ClaimSet interface {
	// EntityType returns the record store entity the claims describe.
	EntityType() EntityType
	// Kind returns the principal kind of the claims.
	Kind() PrincipalKind
	// Subject returns the unique immutable ID used as the token subject.
	Subject() string
}

// UserClaims is the claim shape for user principals (readers and writers).
type UserClaims struct {
	UserID string
	Role   UserRole
}

// NewUserClaims constructs user claims, rejecting partial input.
func NewUserClaims(userID string, role UserRole) (UserClaims, error) {
	if userID == "" {
		return UserClaims{}, fmt.Errorf("%w: user_id required", ErrMalformedClaims)
	}
	if !ValidUserRole(role) {
		return UserClaims{}, fmt.Errorf("%w: unknown user role %q", ErrMalformedClaims, role)
	}
	return UserClaims{UserID: userID, Role: role}, nil
}

// EntityType implements ClaimSet.
func (c UserClaims) EntityType() EntityType { return EntityUser }

// Kind implements ClaimSet. The kind of a user principal is its role.
func (c UserClaims) Kind() PrincipalKind { return PrincipalKind(c.Role) }

// Subject implements ClaimSet.
func (c UserClaims) Subject() string { return c.UserID }

// PublisherClaims is the claim shape for publisher house principals.
type PublisherClaims struct {
	PublisherHouseID string
	Name             string
	Email            string
}

// NewPublisherClaims constructs publisher claims, rejecting partial input.
func NewPublisherClaims(publisherHouseID, name, email string) (PublisherClaims, error) {
	if publisherHouseID == "" {
		return PublisherClaims{}, fmt.Errorf("%w: publisher_house_id required", ErrMalformedClaims)
	}
	if name == "" {
		return PublisherClaims{}, fmt.Errorf("%w: name required", ErrMalformedClaims)
	}
	if email == "" {
		return PublisherClaims{}, fmt.Errorf("%w: email required", ErrMalformedClaims)
	}
	return PublisherClaims{PublisherHouseID: publisherHouseID, Name: name, Email: email}, nil
}

// EntityType implements ClaimSet.
func (c PublisherClaims) EntityType() EntityType { return EntityPublisher }

// Kind implements ClaimSet.
func (c PublisherClaims) Kind() PrincipalKind { return KindPublisher }

// Subject implements ClaimSet.
func (c PublisherClaims) Subject() string { return c.PublisherHouseID }

// AdminClaims is the claim shape for admin principals. IsSuperAdmin and
// Permissions are always derived from Role by the constructor; they are
// never taken from caller input.
type AdminClaims struct {
	AdminID      string
	Username     string
	Role         AdminRole
	IsSuperAdmin bool
	Permissions  PermissionSet
}

// NewAdminClaims constructs admin claims, deriving the permission flags
// from the role.
func NewAdminClaims(adminID, username string, role AdminRole) (AdminClaims, error) {
	if adminID == "" {
		return AdminClaims{}, fmt.Errorf("%w: admin_id required", ErrMalformedClaims)
	}
	if username == "" {
		return AdminClaims{}, fmt.Errorf("%w: username required", ErrMalformedClaims)
	}
	if !ValidAdminRole(role) {
		return AdminClaims{}, fmt.Errorf("%w: unknown admin role %q", ErrMalformedClaims, role)
	}
	return AdminClaims{
		AdminID:      adminID,
		Username:     username,
		Role:         role,
		IsSuperAdmin: role == RoleSuperAdmin,
		Permissions:  PermissionsFor(role),
	}, nil
}

// EntityType implements ClaimSet.
func (c AdminClaims) EntityType() EntityType { return EntityAdmin }

// Kind implements ClaimSet.
func (c AdminClaims) Kind() PrincipalKind { return KindAdmin }

// Subject implements ClaimSet.
func (c AdminClaims) Subject() string { return c.AdminID }
