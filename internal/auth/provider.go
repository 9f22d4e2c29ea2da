// Package auth implements the pluggable authentication provider: local
// password sessions or externally issued identity tokens. One provider is
// selected at startup and never mixed at the route level.
package auth

import (
	"net/http"
)

// Identity describes the authenticated caller as resolved by a Provider.
type Identity struct {
	// Subject is the principal identifier: the admin id for the local
	// provider, the external subject for the token provider.
	Subject string `json:"id"`
	// Username is a display/login name when the provider has one.
	Username string `json:"username,omitempty"`
	// Admin reports whether the caller may mutate content. Always true for
	// local sessions; gated on users.is_admin for tokens.
	Admin bool `json:"-"`
}

// Provider resolves the caller's identity from an inbound request.
//
// Identify returns (nil, nil) when the request carries no credentials at
// all, and an error when credentials are present but invalid. A resolved
// identity with Admin=false means authenticated-but-not-authorized — the
// middleware keeps the two rejection signals distinct.
type Provider interface {
	Name() string
	Identify(r *http.Request) (*Identity, error)
}
