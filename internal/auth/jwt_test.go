package auth

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitializeJWT("test-secret")

	token, err := GenerateToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.Admin {
		t.Error("user token must not carry the admin claim")
	}
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	InitializeJWT("test-secret")

	token, err := GenerateAdminToken("admin")
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate admin token: %v", err)
	}

	if !claims.Admin {
		t.Error("expected the admin claim to be set")
	}
	if claims.Username != "admin" {
		t.Errorf("expected username claim, got %q", claims.Username)
	}
	if claims.UserID != 0 {
		t.Errorf("admin token must not carry a user_id, got %d", claims.UserID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	InitializeJWT("first-secret")
	token, err := GenerateToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	InitializeJWT("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	InitializeJWT("test-secret")
	if _, err := ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "password123" {
		t.Error("hash must differ from the plaintext password")
	}

	if !CheckPassword(hash, "password123") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "wrongpassword") {
		t.Error("wrong password must not verify")
	}
}
