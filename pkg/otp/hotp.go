package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"strconv"
)

// ErrEmptySecret indicates a secret that decodes to zero bytes.
var ErrEmptySecret = errors.New("otp: secret is empty")

// pow10 holds 10^n for the supported code lengths.
var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// HOTP computes the RFC 4226 code for secret at counter.
func HOTP(secret []byte, counter uint64) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	return hotp(secret, counter, Digits), nil
}

func hotp(secret []byte, counter uint64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226 section 5.3).
	offset := sum[len(sum)-1] & 0x0F
	bin := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF

	return pad(strconv.FormatUint(uint64(bin%pow10[digits]), 10), digits)
}

func pad(s string, width int) string {
	const zeros = "00000000"
	if len(s) >= width {
		return s
	}
	return zeros[:width-len(s)] + s
}
