// Package main is the entry point for the ScienceHeaven API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"scienceheaven/internal/auth"
	"scienceheaven/internal/config"
	"scienceheaven/internal/database"
	"scienceheaven/internal/handlers"
	"scienceheaven/internal/router"
	"scienceheaven/internal/session"
	"scienceheaven/internal/store"
	"scienceheaven/internal/upload"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text at debug level in development, JSON at info
	// level everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"auth_provider", cfg.AuthProvider,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Initialize data stores.
	contentStore := store.NewContentStore(db)

	// Initialize the upload store (local disk, served at /uploads).
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	// Select the authentication provider once at startup. The two variants
	// are interchangeable at the middleware boundary and never mixed.
	var (
		provider     auth.Provider
		authHandlers *handlers.Auth
		valkeyClient *redis.Client
	)
	switch cfg.AuthProvider {
	case config.AuthLocal:
		// Connect to Valkey (Redis-compatible session store).
		valkeyClient = redis.NewClient(&redis.Options{
			Addr:     cfg.ValkeyAddr(),
			Password: cfg.ValkeyPassword,
		})
		if err := valkeyClient.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		// In non-development environments, mark session cookies as
		// Secure (HTTPS-only).
		sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())
		local := auth.NewLocal(store.NewAdminStore(db), sessionStore)
		provider = local
		authHandlers = handlers.NewAuth(local, cfg.IsDev())

	case config.AuthToken:
		verifier, err := auth.NewTokenVerifier(cfg.TokenSecret, cfg.TokenIssuer)
		if err != nil {
			slog.Error("failed to initialize token verifier", "error", err)
			os.Exit(1)
		}
		provider = auth.NewToken(verifier, store.NewUserStore(db))
	}

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(contentStore)
	adminHandlers := handlers.NewAdmin(contentStore, uploads)

	// Set up the Chi router with all middleware and routes.
	r := router.New(provider, publicHandlers, adminHandlers, authHandlers, uploads.Dir())

	// Create the HTTP server with sensible timeouts. ReadTimeout must
	// accommodate a full 5 MB multipart upload on a slow link.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
