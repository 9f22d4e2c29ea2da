package store

import (
	"context"
	"database/sql"
	"fmt"

	"scienceheaven/internal/models"
)

// UserStore handles external-identity principal database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID retrieves a user by external subject id. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, profile_image_url, is_admin, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Upsert inserts or updates a user keyed by external subject id. IsAdmin is
// deliberately NOT touched — authorization is provisioned out-of-band, never
// by the sign-in flow.
func (s *UserStore) Upsert(ctx context.Context, id string, email, firstName, lastName, profileImageURL *string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email             = EXCLUDED.email,
			first_name        = EXCLUDED.first_name,
			last_name         = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at        = NOW()
		RETURNING id, email, first_name, last_name, profile_image_url, is_admin, created_at, updated_at
	`, id, email, firstName, lastName, profileImageURL).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

// SetAdmin flips the authorization flag for a user. Exposed for out-of-band
// provisioning (CLI, SQL console, tests) — no HTTP route calls it.
func (s *UserStore) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_admin = $1, updated_at = NOW() WHERE id = $2
	`, isAdmin, id)
	if err != nil {
		return fmt.Errorf("set user admin: %w", err)
	}
	return nil
}
