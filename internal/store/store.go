// ABOUTME: Store interface and record types for identity persistence
// ABOUTME: Defines User, Publisher, Admin records and common store errors

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness rule.
var ErrDuplicate = errors.New("record already exists")

// User represents an end user (reader or writer).
type User struct {
	ID           string
	Username     string
	FullName     string
	PhoneNumber  string
	Email        string
	PasswordHash string
	Role         string // "reader" or "writer"
	IsActive     bool
	IsVerified   bool // email verified via OTP
	CreatedAt    time.Time
}

// Publisher represents a publisher house organization.
type Publisher struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
}

// Admin represents a system administrator. The capability flags mirror
// what was derived from the role at registration time; token issuance
// re-derives them from the role and never trusts these columns.
type Admin struct {
	ID                  string
	Username            string
	Email               string
	PhoneNumber         string
	PasswordHash        string
	Role                string // "super_admin", "content_admin", "user_admin", "publisher_admin"
	IsSuperAdmin        bool
	CanManageUsers      bool
	CanManagePublishers bool
	CanManageContent    bool
	CanManageSystem     bool
	IsActive            bool
	CreatedAt           time.Time
	LastLogin           *time.Time
}

// Store defines the interface for identity record persistence.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	SetUserRole(ctx context.Context, id, role string) error
	SetUserVerified(ctx context.Context, id string) error
	ListUsers(ctx context.Context, limit int) ([]*User, error)

	// Publisher houses
	CreatePublisher(ctx context.Context, p *Publisher) error
	GetPublisherByID(ctx context.Context, id string) (*Publisher, error)
	GetPublisherByName(ctx context.Context, name string) (*Publisher, error)
	GetPublisherByEmail(ctx context.Context, email string) (*Publisher, error)
	ListPublishers(ctx context.Context, limit int) ([]*Publisher, error)

	// Admins
	CreateAdmin(ctx context.Context, a *Admin) error
	GetAdminByID(ctx context.Context, id string) (*Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	TouchAdminLogin(ctx context.Context, id string) error

	// Close releases any resources held by the store
	Close() error
}
