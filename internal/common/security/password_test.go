package security

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("correct horse", hash) {
		t.Fatal("password does not verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !IsHashed(hash) {
		t.Fatalf("bcrypt output %q not recognized as a hash", hash)
	}
	if IsHashed("correct horse") {
		t.Fatal("plaintext recognized as a hash")
	}
}
