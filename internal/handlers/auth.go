package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"scienceheaven/internal/auth"
	"scienceheaven/internal/middleware"
)

// Auth groups the local-provider authentication handlers: login, logout and
// one-time admin bootstrap. The router mounts them only when the local
// provider is selected; token-mode deployments have no login surface here.
type Auth struct {
	local *auth.Local
	// allowDefaults permits the original bootstrap shortcut (missing setup
	// fields filled with stock values). Enabled only outside production.
	allowDefaults bool
}

// NewAuth creates a new Auth handler group.
func NewAuth(local *auth.Local, allowDefaults bool) *Auth {
	return &Auth{local: local, allowDefaults: allowDefaults}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. On success a server-side session is
// created and the cookie set.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := a.local.Login(r.Context(), w, req.Username, req.Password)
	if err != nil {
		slog.Error("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if admin == nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin": map[string]any{
			"id":       admin.ID,
			"username": admin.Username,
			"name":     admin.Name,
		},
	})
}

// Logout handles POST /api/admin/logout: destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.local.Logout(w, r); err != nil {
		slog.Error("logout failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Status handles GET /api/admin/status: reports the caller's identity as
// resolved by whichever provider is active. Public — never rejects.
func Status(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusOK, map[string]any{"isLoggedIn": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"isLoggedIn": true,
		"admin": map[string]any{
			"id":       ident.Subject,
			"username": ident.Username,
		},
	})
}

type setupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Setup handles POST /api/admin/setup: bootstraps the first admin. Guarded
// by an at-most-one rule — once any admin exists the endpoint refuses.
func (a *Auth) Setup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := a.local.Admins().Count(ctx)
	if err != nil {
		slog.Error("setup check failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Setup failed")
		return
	}
	if count > 0 {
		writeMessage(w, http.StatusBadRequest, "Admin already exists")
		return
	}

	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if a.allowDefaults {
		if req.Username == "" {
			req.Username = "admin"
		}
		if req.Password == "" {
			req.Password = "admin123"
		}
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if _, err := a.local.Admins().Create(ctx, req.Username, req.Password, req.Name, req.Email); err != nil {
		slog.Error("setup create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Setup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Admin created successfully",
	})
}
