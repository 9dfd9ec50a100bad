package auth

import (
	"testing"
	"time"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("did not expect expiry before ExpiresAt")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected expiry at ExpiresAt")
	}
	if (Session{}).Expired(now) {
		t.Fatalf("zero ExpiresAt should never expire")
	}
}

func TestSession_Authenticated(t *testing.T) {
	if (Session{}).Authenticated() {
		t.Fatalf("expected session without token to be unauthenticated")
	}
	if !(Session{Token: "tok"}).Authenticated() {
		t.Fatalf("expected session with token to be authenticated")
	}
}

func TestCredentials_Normalize(t *testing.T) {
	c := Credentials{Email: "  traveller@example.com ", Password: " secret "}.Normalize()
	if c.Email != "traveller@example.com" {
		t.Fatalf("unexpected email %q", c.Email)
	}
	if c.Password != " secret " {
		t.Fatalf("password must not be trimmed, got %q", c.Password)
	}
}
