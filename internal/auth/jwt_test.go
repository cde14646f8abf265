package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitializeJWT("test-secret")

	token, err := GenerateToken("user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.Subject != "user@example.com" {
		t.Errorf("expected subject 'user@example.com', got %q", claims.Subject)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitializeJWT("first-secret")
	token, err := GenerateToken("user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	InitializeJWT("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to fail after secret rotation")
	}
}

func TestValidateTokenRejectsWrongSigningMethod(t *testing.T) {
	InitializeJWT("test-secret")

	// alg=none tokens must never validate
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "user@example.com",
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to reject an unsigned token")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	InitializeJWT("")

	if _, err := GenerateToken("user@example.com"); err == nil {
		t.Error("expected an error without an initialized secret")
	}
}
