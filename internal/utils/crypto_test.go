package utils

import (
	"encoding/hex"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString("a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6")
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey(t)
	plain := "DE89370400440532013000"

	enc, err := Encrypt(plain, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if enc == plain {
		t.Fatal("ciphertext equals plaintext")
	}
	got, err := Decrypt(enc, key)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plain {
		t.Errorf("round trip = %q, want %q", got, plain)
	}
}

func TestEncryptRejectsBadKey(t *testing.T) {
	if _, err := Encrypt("data", []byte("short")); err == nil {
		t.Error("Encrypt with 5-byte key: expected error")
	}
	if _, err := Encrypt("", testKey(t)); err == nil {
		t.Error("Encrypt with empty data: expected error")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	key := testKey(t)
	if _, err := Decrypt("not-hex", key); err == nil {
		t.Error("Decrypt of non-hex: expected error")
	}
	if _, err := Decrypt("abcd", key); err == nil {
		t.Error("Decrypt of too-short data: expected error")
	}
}

func TestMaskAccountNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"DE89370400440532013000", "******************3000"},
		{"1234", "1234"},
		{"12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MaskAccountNumber(tt.in); got != tt.want {
			t.Errorf("MaskAccountNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChecksumVerify(t *testing.T) {
	payload := []byte(`{"members":[]}`)
	sum := Checksum(payload, "secret")
	if !VerifyChecksum(payload, "secret", sum) {
		t.Error("VerifyChecksum rejected a valid checksum")
	}
	if VerifyChecksum(payload, "other-secret", sum) {
		t.Error("VerifyChecksum accepted a checksum made with another secret")
	}
	if VerifyChecksum([]byte("tampered"), "secret", sum) {
		t.Error("VerifyChecksum accepted a tampered payload")
	}
}
