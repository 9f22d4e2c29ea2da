// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"
)

// Admin is the local-credential principal. At most one admin is bootstrapped
// through the setup endpoint; authentication compares a submitted password
// against PasswordHash with bcrypt.
type Admin struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Name         *string   `json:"name,omitempty"`
	Email        *string   `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User is the external-identity principal, keyed by the subject identifier
// issued by the identity provider and upserted on every verified sign-in.
// IsAdmin is the sole authorization flag and is provisioned out-of-band —
// the sign-in flow never sets it.
type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	IsAdmin         bool      `json:"isAdmin"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
