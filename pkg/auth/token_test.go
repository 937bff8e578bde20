package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "aestheticmarket",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{SellerID: 7, Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.SellerID != 7 {
		t.Fatalf("expected seller id 7, got %d", claims.SellerID)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be generated")
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp, claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "aestheticmarket", ExpirationMinutes: 10}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{SellerID: 1, Email: "a@b.co"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token+"x")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if errors.Is(err, ErrExpiredToken) {
		t.Fatalf("signature failure must not read as expiry")
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "aestheticmarket", ExpirationMinutes: 10}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{SellerID: 1, Email: "a@b.co"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "another"
	if _, err := ParseAccessToken(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "aestheticmarket", ExpirationMinutes: 15}

	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{SellerID: 3, Email: "old@example.com"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseAccessTokenRejectsOtherAlgorithms(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "aestheticmarket", ExpirationMinutes: 15}
	claims := AccessTokenClaims{
		SellerID: 1,
		Email:    "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}
}

func TestMintAccessTokenValidatesPayload(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "aestheticmarket", ExpirationMinutes: 5}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Email: "a@b.co"}); err == nil {
		t.Fatal("expected error for missing seller id")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{SellerID: 1}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if _, err := MintAccessToken(config.JWTConfig{ExpirationMinutes: 5}, time.Now(), AccessTokenPayload{SellerID: 1, Email: "a@b.co"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
