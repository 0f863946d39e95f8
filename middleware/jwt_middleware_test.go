package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, refreshToken, err := GenerateJWT("64f1c2d4e5a6b7c8d9e0f1a2", "vendor@example.com", "vendor")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("expected non-empty token and refresh token")
	}

	parsed, err := jwt.ParseWithClaims(token, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse generated token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("generated token is not valid")
	}

	claims, ok := parsed.Claims.(*JwtCustomClaims)
	if !ok {
		t.Fatal("claims have unexpected type")
	}
	if claims.UserID != "64f1c2d4e5a6b7c8d9e0f1a2" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "64f1c2d4e5a6b7c8d9e0f1a2")
	}
	if claims.UserType != "vendor" {
		t.Errorf("UserType = %q, want %q", claims.UserType, "vendor")
	}
	if claims.Email != "vendor@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "vendor@example.com")
	}
}

func TestGenerateJWTMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, _, err := GenerateJWT("id", "email", "company"); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}
