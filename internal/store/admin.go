// Package store provides database access methods for all ScienceHeaven
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"scienceheaven/internal/models"
)

// AdminStore handles local-credential admin database operations.
type AdminStore struct {
	db *sql.DB
}

// NewAdminStore creates a new AdminStore with the given database connection.
func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

// FindByUsername retrieves an admin by username. Returns nil if not found.
func (s *AdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	a := &models.Admin{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, name, email, created_at
		FROM admins WHERE username = $1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by username: %w", err)
	}
	return a, nil
}

// Create inserts a new admin with a bcrypt-hashed password.
func (s *AdminStore) Create(ctx context.Context, username, password string, name, email *string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &models.Admin{}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, name, email, created_at
	`, username, string(hash), name, email).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return a, nil
}

// Verify checks a username/password pair. Returns the admin on success and
// nil when the username is unknown or the password does not match.
func (s *AdminStore) Verify(ctx context.Context, username, password string) (*models.Admin, error) {
	a, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return a, nil
}

// Count returns the number of admins. The setup endpoint uses it to enforce
// the at-most-one bootstrap rule.
func (s *AdminStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}
