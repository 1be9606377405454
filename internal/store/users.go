// ABOUTME: User record store methods for the SQLite store
// ABOUTME: Username is the unique identity key for users

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateUser inserts a new user. If the ID is empty a UUID is assigned.
// Returns ErrDuplicate if the username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, username, full_name, phone_number, email, password_hash, role, is_active, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.FullName,
		u.PhoneNumber,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsActive,
		u.IsVerified,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating user: %w", err)
	}

	s.logger.Debug("created user", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return nil
}

const userColumns = `id, username, full_name, phone_number, email, password_hash, role, is_active, is_verified, created_at`

// GetUserByID returns the user with the given ID, or ErrNotFound.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername returns the user with the given username, or ErrNotFound.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// GetUserByEmail returns the first user with the given email, or ErrNotFound.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
	return scanUser(row)
}

// SetUserRole updates a user's role. Returns ErrNotFound if no such user.
func (s *SQLiteStore) SetUserRole(ctx context.Context, id, role string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated user role", "user_id", id, "role", role)
	return nil
}

// SetUserVerified marks a user's email as verified. Returns ErrNotFound
// if no such user.
func (s *SQLiteStore) SetUserVerified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET is_verified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking user verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking user verified: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns up to limit users ordered by creation time.
func (s *SQLiteStore) ListUsers(ctx context.Context, limit int) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	var u User
	var createdAt string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.PhoneNumber,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.IsVerified,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing user created_at: %w", err)
	}

	return &u, nil
}
