package otp

import (
	"errors"
	"testing"
)

// rfcSecret is the RFC 4226 Appendix D test secret.
var rfcSecret = []byte("12345678901234567890")

const rfcSecretBase32 = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// TestHOTPVectors tests against RFC 4226 Appendix D
func TestHOTPVectors(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	for counter, code := range want {
		got, err := HOTP(rfcSecret, uint64(counter))
		if err != nil {
			t.Fatalf("counter %d: unexpected error: %v", counter, err)
		}
		if got != code {
			t.Errorf("counter %d: got %s, want %s", counter, got, code)
		}
	}
}

// TestHOTPEmptySecret tests the empty secret precondition
func TestHOTPEmptySecret(t *testing.T) {
	for _, secret := range [][]byte{nil, {}} {
		_, err := HOTP(secret, 0)
		if !errors.Is(err, ErrEmptySecret) {
			t.Errorf("expected ErrEmptySecret, got %v", err)
		}
	}
}

// TestHOTPFormat tests that every code is exactly six digits
func TestHOTPFormat(t *testing.T) {
	secrets := [][]byte{rfcSecret, {0x00}, []byte("a much longer secret than sixty four bytes will be hashed first by hmac")}
	counters := []uint64{0, 1, 59, 1 << 31, 1<<63 - 1, ^uint64(0)}

	for _, secret := range secrets {
		for _, counter := range counters {
			code, err := HOTP(secret, counter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ValidCodeFormat(code) {
				t.Errorf("HOTP(%q, %d) = %q, not six digits", secret, counter, code)
			}
		}
	}

	// Leading zeros must be kept.
	if got := pad("5924", 6); got != "005924" {
		t.Errorf("pad = %q, want 005924", got)
	}
}

// TestHOTPDeterministic tests that repeated calls agree
func TestHOTPDeterministic(t *testing.T) {
	first, _ := HOTP(rfcSecret, 42)
	for i := 0; i < 10; i++ {
		if got, _ := HOTP(rfcSecret, 42); got != first {
			t.Fatalf("HOTP changed between calls: %s != %s", got, first)
		}
	}
}
