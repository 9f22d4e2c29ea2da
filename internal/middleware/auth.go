// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"scienceheaven/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the resolved caller identity.
	IdentityKey contextKey = "identity"
)

// LoadIdentity resolves the caller's identity through the configured
// provider and stores it in the request context. It never blocks a request:
// invalid or missing credentials simply leave the context empty, and the
// Require* gates decide what to do about that.
func LoadIdentity(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := provider.Identify(r)
			if err != nil {
				// Bad credentials — log and treat as unauthenticated.
				slog.Debug("identity resolution failed", "provider", provider.Name(), "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if ident != nil {
				ctx := context.WithValue(r.Context(), IdentityKey, ident)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests with no resolved identity with 401.
// Must be applied after LoadIdentity in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects authenticated non-admin callers with 403 — a signal
// distinct from the 401 of RequireAuth. Must be applied after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromCtx(r.Context())
		if ident == nil {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !ident.Admin {
			writeJSONError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the caller identity from the request context.
// Returns nil if no identity is loaded (caller is not authenticated).
func IdentityFromCtx(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(IdentityKey).(*auth.Identity)
	return ident
}

// writeJSONError emits the API error envelope without pulling in the
// handlers package (which would cycle).
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
