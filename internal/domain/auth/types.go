package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Credentials are the email/password pair submitted on the login and sign-up forms.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims whitespace around the email. Passwords are sent verbatim.
func (c Credentials) Normalize() Credentials {
	c.Email = strings.TrimSpace(c.Email)
	return c
}

// AuthResult is what the travel API returns after a successful login or registration.
type AuthResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Session is the server-side record we persist for a signed-in browser.
// ID is the opaque value carried by the session cookie; Token is the
// upstream bearer credential and never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session lifetime has elapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Authenticated reports whether the session carries an upstream token.
func (s Session) Authenticated() bool { return s.Token != "" }
