package auth

import (
	"testing"

	"github.com/spec-kit/groundops-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{
		ID:       42,
		Username: "smith00",
		Role:     domain.RoleAirline,
		Airline:  "KL",
	}

	token, exp, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if exp.IsZero() {
		t.Error("expected a non-zero expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected uid 42, got %d", claims.UserID)
	}
	if claims.Username != "smith00" {
		t.Errorf("expected username smith00, got %q", claims.Username)
	}
	if claims.Role != domain.RoleAirline {
		t.Errorf("expected role airline, got %q", claims.Role)
	}
	if claims.Airline != "KL" {
		t.Errorf("expected airline KL, got %q", claims.Airline)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(&domain.User{ID: 1, Username: "jones00", Role: domain.RoleGround})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}
