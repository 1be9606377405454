// ABOUTME: Admin record store methods for the SQLite store
// ABOUTME: Username and email are both unique identity keys for admins

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateAdmin inserts a new admin. If the ID is empty a UUID is
// assigned. Returns ErrDuplicate if the username or email is taken.
func (s *SQLiteStore) CreateAdmin(ctx context.Context, a *Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO admins (
			id, username, email, phone_number, password_hash, role,
			is_super_admin, can_manage_users, can_manage_publishers,
			can_manage_content, can_manage_system, is_active, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		a.PhoneNumber,
		a.PasswordHash,
		a.Role,
		a.IsSuperAdmin,
		a.CanManageUsers,
		a.CanManagePublishers,
		a.CanManageContent,
		a.CanManageSystem,
		a.IsActive,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating admin: %w", err)
	}

	s.logger.Debug("created admin", "admin_id", a.ID, "username", a.Username, "role", a.Role)
	return nil
}

const adminColumns = `id, username, email, phone_number, password_hash, role,
	is_super_admin, can_manage_users, can_manage_publishers,
	can_manage_content, can_manage_system, is_active, created_at, last_login`

// GetAdminByID returns the admin with the given ID, or ErrNotFound.
func (s *SQLiteStore) GetAdminByID(ctx context.Context, id string) (*Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

// GetAdminByUsername returns the admin with the given username, or ErrNotFound.
func (s *SQLiteStore) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

// GetAdminByEmail returns the admin with the given email, or ErrNotFound.
func (s *SQLiteStore) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
	return scanAdmin(row)
}

// TouchAdminLogin records the time of a successful admin login.
func (s *SQLiteStore) TouchAdminLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE admins SET last_login = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("recording admin login: %w", err)
	}
	return nil
}

func scanAdmin(row scanner) (*Admin, error) {
	var a Admin
	var createdAt string
	var lastLogin sql.NullString

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PhoneNumber,
		&a.PasswordHash,
		&a.Role,
		&a.IsSuperAdmin,
		&a.CanManageUsers,
		&a.CanManagePublishers,
		&a.CanManageContent,
		&a.CanManageSystem,
		&a.IsActive,
		&createdAt,
		&lastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning admin: %w", err)
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing admin created_at: %w", err)
	}

	if lastLogin.Valid {
		t, err := time.Parse(time.RFC3339, lastLogin.String)
		if err != nil {
			return nil, fmt.Errorf("parsing admin last_login: %w", err)
		}
		a.LastLogin = &t
	}

	return &a, nil
}
