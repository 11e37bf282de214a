package jwt

import (
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(15*time.Minute, 7*24*time.Hour, "zyrok-test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t)

	access, refresh, exp, err := m.GenerateTokenPair("alice", "alice01")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("tokens should not be empty")
	}
	if exp <= time.Now().Unix() {
		t.Error("access expiry should be in the future")
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "alice" || claims.Username != "alice01" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Type != "access" {
		t.Errorf("type = %q, want access", claims.Type)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newTestManager(t)
	verifier := newTestManager(t)

	access, _, _, err := issuer.GenerateTokenPair("alice", "alice01")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := verifier.ValidateToken(access); err == nil {
		t.Fatal("expected error for token signed with another key")
	}
}

func TestRefreshTokens(t *testing.T) {
	m := newTestManager(t)

	access, refresh, _, err := m.GenerateTokenPair("alice", "alice01")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	// An access token must not work as a refresh token.
	if _, _, _, err := m.RefreshTokens(access); err == nil {
		t.Fatal("expected error refreshing with an access token")
	}

	newAccess, newRefresh, _, err := m.RefreshTokens(refresh)
	if err != nil {
		t.Fatalf("RefreshTokens: %v", err)
	}
	claims, err := m.ValidateToken(newAccess)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "alice" {
		t.Errorf("user = %q, want alice", claims.UserID)
	}
	if newRefresh == "" {
		t.Error("refresh token should be rotated")
	}
}
