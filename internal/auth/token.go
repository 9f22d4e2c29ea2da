package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"scienceheaven/internal/store"
)

// TokenVerifier verifies externally issued identity tokens. Verification is
// stateless — only the shared HMAC secret is needed, no store lookup.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier for HS256 tokens from the given issuer.
// The secret should be at least 32 bytes of random data in production.
func NewTokenVerifier(secret, issuer string) (*TokenVerifier, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}, nil
}

// Claims is the identity payload carried by an external token. The subject
// is the external user id; profile fields are upserted on every sign-in.
type Claims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a token string, returning its claims.
// Restricting to HS256 via WithValidMethods blocks algorithm confusion.
func (v *TokenVerifier) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}
	if c.Subject == "" {
		return nil, errors.New("auth: token has no subject")
	}
	return c, nil
}

// Token decouples identity from authorization: the external provider vouches
// for who the caller is, the users table decides whether they are an admin.
// Many signed-in users, few admins.
type Token struct {
	verifier *TokenVerifier
	users    *store.UserStore
}

// NewToken creates the external-identity provider.
func NewToken(verifier *TokenVerifier, users *store.UserStore) *Token {
	return &Token{verifier: verifier, users: users}
}

// Name implements Provider.
func (t *Token) Name() string { return "token" }

// Identify verifies the bearer token, upserts the caller as a user keyed by
// the token subject, and reports admin status from the stored is_admin flag.
// A request without an Authorization header yields (nil, nil); a present but
// invalid token yields an error.
func (t *Token) Identify(r *http.Request) (*Identity, error) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		return nil, nil
	}

	claims, err := t.verifier.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	// Insert-or-update on every verified sign-in. is_admin is never written
	// here — it is provisioned out-of-band.
	user, err := t.users.Upsert(r.Context(), claims.Subject,
		optional(claims.Email), optional(claims.FirstName),
		optional(claims.LastName), optional(claims.ProfileImageURL))
	if err != nil {
		return nil, err
	}

	username := user.ID
	if user.Email != nil {
		username = *user.Email
	}

	return &Identity{
		Subject:  user.ID,
		Username: username,
		Admin:    user.IsAdmin,
	}, nil
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
