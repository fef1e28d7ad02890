package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := Hash("s3cret-pa55word")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(string(hash), "argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	if err := VerifyPassword(string(hash), "s3cret-pa55word"); err != nil {
		t.Fatalf("expected password to verify: %v", err)
	}
	if err := VerifyPassword(string(hash), "wrong-password"); err == nil {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	a, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if string(a) == string(b) {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if err := VerifyPassword("not-a-hash", "whatever"); err == nil {
		t.Fatal("expected malformed hash to fail verification")
	}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	signed, jti, err := GenerateJWT(userID, "a@example.com", time.Minute, secret)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}

	claims, err := VerifyJWT(signed, secret)
	if err != nil {
		t.Fatalf("VerifyJWT returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, claims.UserID)
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("unexpected email: %q", claims.Email)
	}
	if claims.ID != jti {
		t.Fatalf("expected jti %q got %q", jti, claims.ID)
	}
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	signed, _, err := GenerateJWT(uuid.New(), "a@example.com", time.Minute, []byte("secret-a"))
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := VerifyJWT(signed, []byte("secret-b")); err == nil {
		t.Fatal("expected verification with wrong secret to fail")
	}
}

func TestVerifyJWT_Expired(t *testing.T) {
	secret := []byte("test-secret")
	signed, _, err := GenerateJWT(uuid.New(), "a@example.com", -time.Minute, secret)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := VerifyJWT(signed, secret); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}
