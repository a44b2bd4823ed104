package auth

import (
	"testing"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret"}

	token, err := GenerateToken(cfg, 42, "vladimir")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "vladimir" {
		t.Fatalf("claims = %d/%s, want 42/vladimir", claims.UserID, claims.Username)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "one"}, 1, "u")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(&config.JWTConfig{Secret: "two"}, token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(&config.JWTConfig{Secret: "s"}, "not.a.token"); err == nil {
		t.Fatalf("malformed token must be rejected")
	}
}
