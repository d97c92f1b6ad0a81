package realtime

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const plausibleToken = "abcdefghijklmnopqrstuvwxyz123456"

func TestExtractTokenFromAuthQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin?auth="+plausibleToken, nil)

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected token from auth query, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenFromTokenQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin?token="+plausibleToken, nil)

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected token from token query, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin", nil)
	r.Header.Set("Authorization", "Bearer "+plausibleToken)

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected token from header, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenFromCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: plausibleToken})

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected token from cookie, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenPrefersEarlierSource(t *testing.T) {
	other := "zyxwvutsrqponmlkjihgfedcba654321"
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin?auth="+plausibleToken, nil)
	r.Header.Set("Authorization", "Bearer "+other)

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected the auth query to win, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenSkipsTruncatedCandidates(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin?auth=short", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: plausibleToken})

	token, ok := extractToken(r)
	if !ok || token != plausibleToken {
		t.Fatalf("expected the short candidate skipped, got %q ok=%v", token, ok)
	}
}

func TestExtractTokenNoneFound(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/checkin", nil)

	if _, ok := extractToken(r); ok {
		t.Fatalf("expected no token")
	}
}
