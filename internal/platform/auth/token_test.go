package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), 30*time.Minute)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected subject admin, got %s", subject)
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	issuer := NewIssuer([]byte("test-secret"), 30*time.Minute).WithClock(clock)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Validate(token); err != nil {
		t.Fatalf("fresh token should validate: %v", err)
	}

	now = now.Add(31 * time.Minute)
	if _, err := issuer.Validate(token); err == nil {
		t.Error("expected expired token to fail validation")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewIssuer([]byte("secret-a"), time.Minute).Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewIssuer([]byte("secret-b"), time.Minute).Validate(token); err == nil {
		t.Error("expected validation to fail under a rotated secret")
	}
}

func TestTokenEmptySubject(t *testing.T) {
	if _, err := NewIssuer([]byte("s"), time.Minute).Issue(""); err == nil {
		t.Error("expected error issuing a token without subject")
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := NewIssuer([]byte("s"), time.Minute).Validate("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
