package otp

import (
	"crypto/subtle"
	"errors"
)

const (
	// Period is the TOTP time step in seconds.
	Period = 30
	// Digits is the length of every generated code.
	Digits = 6
	// Window is the number of periods accepted on either side of the current one.
	Window = 1
)

// ErrInvalidTime indicates a Unix time before the epoch.
var ErrInvalidTime = errors.New("otp: time must not be before the unix epoch")

// Counter returns the TOTP counter for the given Unix time.
func Counter(atUnix int64) (uint64, error) {
	if atUnix < 0 {
		return 0, ErrInvalidTime
	}
	return uint64(atUnix) / Period, nil
}

// CurrentCode returns the code for secretBase32 at atUnix.
func CurrentCode(secretBase32 string, atUnix int64) (string, error) {
	key, err := decodeSecret(secretBase32)
	if err != nil {
		return "", err
	}
	counter, err := Counter(atUnix)
	if err != nil {
		return "", err
	}
	return hotp(key, counter, Digits), nil
}

// Verify reports whether candidate is the code for secretBase32 in the
// period containing atUnix or in one of the Window periods around it.
// Malformed codes, malformed secrets and pre-epoch times all yield false.
func Verify(secretBase32, candidate string, atUnix int64) bool {
	if !ValidCodeFormat(candidate) {
		return false
	}
	key, err := decodeSecret(secretBase32)
	if err != nil {
		return false
	}
	counter, err := Counter(atUnix)
	if err != nil {
		return false
	}

	for delta := -Window; delta <= Window; delta++ {
		if delta < 0 && counter < uint64(-delta) {
			continue
		}
		c := counter + uint64(delta)
		if subtle.ConstantTimeCompare([]byte(hotp(key, c, Digits)), []byte(candidate)) == 1 {
			return true
		}
	}
	return false
}

// ValidCodeFormat reports whether code is exactly Digits ASCII digits.
func ValidCodeFormat(code string) bool {
	if len(code) != Digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func decodeSecret(secretBase32 string) ([]byte, error) {
	key, err := DecodeStrict(secretBase32)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrEmptySecret
	}
	return key, nil
}
