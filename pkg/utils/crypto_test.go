package utils

import (
	"strings"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundtrip(t *testing.T) {
	plaintext := "oauth-access-token-value"

	encrypted, err := Encrypt([]byte(plaintext), testKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if strings.Contains(encrypted, plaintext) {
		t.Error("ciphertext leaks plaintext")
	}

	decrypted, err := Decrypt(encrypted, testKey)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("decrypted = %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptProducesUniqueCiphertexts(t *testing.T) {
	a, err := Encrypt([]byte("same input"), testKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Encrypt([]byte("same input"), testKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if a == b {
		t.Error("nonce reuse: two encryptions produced identical output")
	}
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	if _, err := Decrypt(encrypted, otherKey); err == nil {
		t.Fatal("expected error with wrong key")
	}
}

func TestDecryptRejectsTruncatedData(t *testing.T) {
	if _, err := Decrypt("YWJj", testKey); err == nil {
		t.Fatal("expected error for short ciphertext")
	}
}
