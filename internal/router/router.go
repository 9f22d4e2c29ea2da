// Package router sets up all HTTP routes and middleware chains for the
// ScienceHeaven API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scienceheaven/internal/auth"
	"scienceheaven/internal/handlers"
	"scienceheaven/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. authHandlers is nil in token mode — the
// login/logout/setup surface only exists for the local provider.
func New(provider auth.Provider, public *handlers.Public, admin *handlers.Admin, authHandlers *handlers.Auth, uploadDir string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadIdentity(provider))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Public content routes.
	r.Get("/api/content", public.List)
	r.Get("/api/content/{id}", public.Get)

	r.Route("/api/admin", func(r chi.Router) {
		// Identity report — public, works for both providers.
		r.Get("/status", handlers.Status)

		// Local-provider auth surface.
		if authHandlers != nil {
			r.Post("/login", authHandlers.Login)
			r.Post("/logout", authHandlers.Logout)
			r.Post("/setup", authHandlers.Setup)
		}

		// Content management — admin only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/content", admin.ListAll)
			r.Post("/content", admin.Create)
			r.Put("/content/{id}", admin.Update)
			r.Delete("/content/{id}", admin.Delete)
		})
	})

	// Static retrieval of uploaded images.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
