package auth

import (
	"testing"
	"time"

	"roamio/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "roamio-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 42, "ada@example.com", "USER")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" || claims.Role != "USER" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 42, "ada@example.com", "USER")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	other := testJWTConfig()
	other.AccessSecret = "some-other-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	userID, err := ParseRefreshToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 7 {
		t.Errorf("userID = %d, want 7", userID)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	refresh, err := GenerateRefreshToken(cfg, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Signed with the refresh secret, so access parsing must fail.
	if _, err := ParseAccessToken(cfg, refresh); err == nil {
		t.Error("refresh token must not validate as an access token")
	}
}
