package auth

import (
	"context"
	"net/http"
	"strconv"

	"scienceheaven/internal/models"
	"scienceheaven/internal/session"
	"scienceheaven/internal/store"
)

// Local authenticates admins against the admins table with bcrypt and keeps
// their identity in a server-side session. Self-contained: no external
// identity provider, suitable for a single fixed operator. Any live session
// is an admin session — there is no finer-grained check.
type Local struct {
	admins   *store.AdminStore
	sessions *session.Store
}

// NewLocal creates the local password provider.
func NewLocal(admins *store.AdminStore, sessions *session.Store) *Local {
	return &Local{admins: admins, sessions: sessions}
}

// Name implements Provider.
func (l *Local) Name() string { return "local" }

// Identify resolves the session cookie to an admin identity. A missing or
// expired session yields (nil, nil).
func (l *Local) Identify(r *http.Request) (*Identity, error) {
	data, err := l.sessions.Get(r.Context(), r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return &Identity{
		Subject:  strconv.Itoa(data.AdminID),
		Username: data.Username,
		Admin:    true,
	}, nil
}

// Login verifies credentials and, on success, creates a session and sets
// the cookie. Returns nil when the credentials do not match.
func (l *Local) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*models.Admin, error) {
	admin, err := l.admins.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}

	if _, err := l.sessions.Create(ctx, w, &session.Data{
		AdminID:  admin.ID,
		Username: admin.Username,
	}); err != nil {
		return nil, err
	}
	return admin, nil
}

// Logout destroys the caller's session.
func (l *Local) Logout(w http.ResponseWriter, r *http.Request) error {
	return l.sessions.Destroy(r.Context(), w, r)
}

// Admins exposes the admin store for the setup endpoint.
func (l *Local) Admins() *store.AdminStore {
	return l.admins
}
