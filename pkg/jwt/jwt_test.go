package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %s, want user@example.com", claims.Email)
	}
	if claims.Issuer != "go-purchasing-api" {
		t.Errorf("issuer = %s", claims.Issuer)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err != ErrInvalidToken {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}

	if _, err := ValidateToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}
}
