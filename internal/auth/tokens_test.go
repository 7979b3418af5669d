package auth

import (
	"testing"
	"time"

	"github.com/emploirapide/api/internal/models"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	token, err := svc.Issue("user-1", models.RoleRecruiter)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != models.RoleRecruiter {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenService("secret-a", time.Hour)
	verifier, _ := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", models.RoleCandidate)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Validate(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Nanosecond)

	token, err := svc.Issue("user-1", models.RoleCandidate)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Validate(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatal("empty secret accepted")
	}
}
