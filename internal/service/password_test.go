package service

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("Secret@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash == "Secret@123" {
		t.Error("Hash must not equal the plaintext password")
	}

	if !hasher.Verify(hash, "Secret@123") {
		t.Error("Expected correct password to verify")
	}

	if hasher.Verify(hash, "wrong-password") {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestPasswordHashSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("Secret@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := hasher.Hash("Secret@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if first == second {
		t.Error("Expected two hashes of the same password to differ")
	}
}

// Verify takes the stored digest first and the submitted plaintext
// second; passing them the other way round must never verify.
func TestPasswordVerifyArgumentOrder(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("Secret@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !hasher.Verify(digest, "Secret@123") {
		t.Error("Expected digest-first verification to succeed")
	}
	if hasher.Verify("Secret@123", digest) {
		t.Error("Expected swapped arguments to fail verification")
	}
}

func TestPasswordVerifyGarbageHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("not-a-bcrypt-hash", "anything") {
		t.Error("Expected verification against a garbage hash to fail")
	}
}
