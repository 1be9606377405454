// ABOUTME: Publisher house record store methods for the SQLite store
// ABOUTME: Email and name are both unique identity keys for publishers

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreatePublisher inserts a new publisher house. If the ID is empty a
// UUID is assigned. Returns ErrDuplicate if the email or name is taken.
func (s *SQLiteStore) CreatePublisher(ctx context.Context, p *Publisher) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO publishers (id, name, email, password_hash, is_active, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.PasswordHash,
		p.IsActive,
		p.IsVerified,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating publisher: %w", err)
	}

	s.logger.Debug("created publisher", "publisher_id", p.ID, "name", p.Name)
	return nil
}

const publisherColumns = `id, name, email, password_hash, is_active, is_verified, created_at`

// GetPublisherByID returns the publisher with the given ID, or ErrNotFound.
func (s *SQLiteStore) GetPublisherByID(ctx context.Context, id string) (*Publisher, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE id = ?`, id)
	return scanPublisher(row)
}

// GetPublisherByName returns the publisher with the given name, or ErrNotFound.
func (s *SQLiteStore) GetPublisherByName(ctx context.Context, name string) (*Publisher, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE name = ?`, name)
	return scanPublisher(row)
}

// GetPublisherByEmail returns the publisher with the given email, or ErrNotFound.
func (s *SQLiteStore) GetPublisherByEmail(ctx context.Context, email string) (*Publisher, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE email = ?`, email)
	return scanPublisher(row)
}

// ListPublishers returns up to limit publishers ordered by creation time.
func (s *SQLiteStore) ListPublishers(ctx context.Context, limit int) ([]*Publisher, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+publisherColumns+` FROM publishers ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing publishers: %w", err)
	}
	defer rows.Close()

	publishers := []*Publisher{}
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publishers: %w", err)
	}

	return publishers, nil
}

func scanPublisher(row scanner) (*Publisher, error) {
	var p Publisher
	var createdAt string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.IsActive,
		&p.IsVerified,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning publisher: %w", err)
	}

	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing publisher created_at: %w", err)
	}

	return &p, nil
}
