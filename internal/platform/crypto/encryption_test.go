package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncryptRoundTrip(t *testing.T) {
	svc, err := New(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected configured service")
	}
	plain := []byte("%PDF-1.3 payslip")
	sealed, err := svc.Encrypt(plain, []byte("E1/PP2024-26"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, plain) {
		t.Fatal("expected ciphertext to hide plaintext")
	}
	opened, err := svc.Decrypt(sealed, []byte("E1/PP2024-26"))
	if err != nil || !bytes.Equal(opened, plain) {
		t.Fatalf("decrypt mismatch: %q (%v)", opened, err)
	}
	if _, err := svc.Decrypt(sealed, []byte("E2/PP2024-26")); err == nil {
		t.Fatal("expected decrypt with wrong binding to fail")
	}
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := svc.Encrypt([]byte("plain"), nil)
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q (%v)", out, err)
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("short"); err == nil {
		t.Fatal("expected short key to be rejected")
	}
}
