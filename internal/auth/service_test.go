package auth

import (
	"testing"
	"time"
)

func TestIssueAndValidateToken(t *testing.T) {
	s := NewService(DefaultConfig("test-secret"))

	token, err := s.IssueToken("js")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if token.Token == "" {
		t.Fatal("IssueToken() returned empty token")
	}
	if !token.ExpiresAt.After(time.Now()) {
		t.Errorf("token expiry %v is not in the future", token.ExpiresAt)
	}

	claims, err := s.ValidateToken(token.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "js" {
		t.Errorf("claims username = %q, want js", claims.Username)
	}
	if claims.Subject != "js" {
		t.Errorf("claims subject = %q, want js", claims.Subject)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService(DefaultConfig("secret-a"))
	verifier := NewService(DefaultConfig("secret-b"))

	token, err := issuer.IssueToken("js")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := verifier.ValidateToken(token.Token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultConfig("test-secret")
	cfg.TokenExpiry = -time.Minute
	s := NewService(cfg)

	token, err := s.IssueToken("js")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := s.ValidateToken(token.Token); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	s := NewService(DefaultConfig("test-secret"))

	if _, err := s.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}
