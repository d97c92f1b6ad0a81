package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestGenerateVerifyRoundTrip(t *testing.T) {
	manager, err := NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	token, err := manager.Generate("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager, err := NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewManager("another-secret-also-32-characters-long", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	token, err := issuer.Generate("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	verifier, err := NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	manager, err := NewManager(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	token, err := manager.Generate("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
