package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "correct-horse-battery") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}
