package otp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// base32Alphabet is the RFC 4648 alphabet used by authenticator apps.
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// ErrInvalidBase32 indicates a secret contains characters outside the Base32 alphabet.
var ErrInvalidBase32 = errors.New("otp: invalid base32")

// DecodeError reports the first character rejected by DecodeStrict.
type DecodeError struct {
	// Pos is the index of the offending character in the normalized input.
	Pos int
	// Char is the offending character.
	Char rune
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("otp: invalid base32 character %q at position %d", e.Char, e.Pos)
}

// Is reports whether target is ErrInvalidBase32.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidBase32
}

// base32Values maps an ASCII byte to its 5-bit value, or -1.
var base32Values = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(base32Alphabet); i++ {
		t[base32Alphabet[i]] = int8(i)
	}
	return t
}()

// Encode returns the unpadded Base32 form of data.
// A trailing group shorter than 5 bits is zero-filled on the right.
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow((len(data)*8 + 4) / 5)

	var buf uint32
	bits := 0
	for _, b := range data {
		buf = buf<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(base32Alphabet[(buf>>uint(bits))&0x1F])
		}
	}
	if bits > 0 {
		sb.WriteByte(base32Alphabet[(buf<<uint(5-bits))&0x1F])
	}
	return sb.String()
}

// Decode is the lenient decoder. Letters are matched case-insensitively and characters
// outside the alphabet are skipped. Trailing bits that do not fill a byte
// are discarded.
func Decode(s string) []byte {
	out := make([]byte, 0, len(s)*5/8)

	var buf uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v := base32Values[upper(s[i])]
		if v < 0 {
			continue
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>uint(bits)))
		}
	}
	return out
}

// Normalize prepares a user-pasted secret for strict decoding: whitespace
// and '-' separators are removed, trailing '=' padding is dropped, and the
// result is uppercased.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r) || r == '-':
			return -1
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		}
		return r
	}, s)
	return strings.TrimRight(s, "=")
}

// upper folds ASCII letters only, so no non-ASCII rune can case-map into the alphabet.
func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// DecodeStrict normalizes s and decodes it, returning a *DecodeError for
// the first character outside the alphabet.
func DecodeStrict(s string) ([]byte, error) {
	s = Normalize(s)
	for i, r := range s {
		if r >= 0x80 || base32Values[byte(r)] < 0 {
			return nil, &DecodeError{Pos: i, Char: r}
		}
	}
	return Decode(s), nil
}
