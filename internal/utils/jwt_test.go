package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "ORGANIZER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if time.Until(at.Exp) <= 0 {
        t.Error("access token already expired")
    }

    tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        t.Fatalf("parse: %v (valid=%v)", err, tok != nil && tok.Valid)
    }
    claims := tok.Claims.(jwt.MapClaims)
    if sub, _ := claims["sub"].(string); sub != "42" {
        t.Errorf("sub = %v, want %q", claims["sub"], "42")
    }
    if role, _ := claims["role"].(string); role != "ORGANIZER" {
        t.Errorf("role = %v, want ORGANIZER", claims["role"])
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "APPLICANT", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    if err == nil && tok.Valid {
        t.Error("token verified under the wrong secret")
    }
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 { // 48 random bytes hex encoded
        t.Errorf("raw length = %d, want 96", len(rt.Raw))
    }
    if time.Until(rt.Exp) < 29*24*time.Hour {
        t.Errorf("expiry %v too soon", rt.Exp)
    }

    other, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if rt.Raw == other.Raw {
        t.Error("two refresh tokens should never collide")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    a := HashRefreshRaw("token-a")
    if a != HashRefreshRaw("token-a") {
        t.Error("hash should be deterministic")
    }
    if a == HashRefreshRaw("token-b") {
        t.Error("different tokens should hash differently")
    }
    if len(a) != 64 { // sha256 hex
        t.Errorf("hash length = %d, want 64", len(a))
    }
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if !VerifyPassword(hash, "s3cret") {
        t.Error("correct password rejected")
    }
    if VerifyPassword(hash, "wrong") {
        t.Error("wrong password accepted")
    }
}
