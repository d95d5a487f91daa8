package otp

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

// TestEncode tests encoding against the RFC 4648 vectors without padding
func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"f", "MY"},
		{"fo", "MZXQ"},
		{"foo", "MZXW6"},
		{"foob", "MZXW6YQ"},
		{"fooba", "MZXW6YTB"},
		{"foobar", "MZXW6YTBOI"},
		{"12345678901234567890", "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Encode([]byte(tt.in)); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestDecode tests the lenient decoder
func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"canonical", "MZXW6YTBOI", "foobar"},
		{"lowercase", "mzxw6ytboi", "foobar"},
		{"padding ignored", "MY======", "f"},
		{"invalid characters skipped", "MZ XW-6YTB!OI", "foobar"},
		{"digits outside alphabet skipped", "MZXW16YTB8OI", "foobar"},
		{"trailing bits discarded", "MZXW6YTBO", "fooba"},
		{"single character", "M", ""},
		{"rfc secret", "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); string(got) != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestRoundTrip tests decode(encode(b)) == b for every length up to 64 bytes
func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 64; n++ {
		data := make([]byte, n)
		if _, err := rand.Read(data); err != nil {
			t.Fatalf("failed to read random bytes: %v", err)
		}

		if got := Decode(Encode(data)); !bytes.Equal(got, data) {
			t.Errorf("round trip of %d bytes: got %x, want %x", n, got, data)
		}

		strict, err := DecodeStrict(Encode(data))
		if err != nil {
			t.Fatalf("DecodeStrict of %d bytes: unexpected error: %v", n, err)
		}
		if !bytes.Equal(strict, data) {
			t.Errorf("strict round trip of %d bytes: got %x, want %x", n, strict, data)
		}
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	if got := Decode(Encode(all)); !bytes.Equal(got, all) {
		t.Error("round trip of every byte value failed")
	}
}

// TestNormalize tests secret normalization
func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jbsw y3dp ehpk 3pxp", "JBSWY3DPEHPK3PXP"},
		{"JBSW-Y3DP-EHPK-3PXP", "JBSWY3DPEHPK3PXP"},
		{"\tMY======\n", "MY"},
		{"MZ=XW", "MZ=XW"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestDecodeStrict tests the strict decoder
func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantPos int
		wantCh  rune
		wantErr bool
	}{
		{name: "canonical", in: "MZXW6YTBOI", want: "foobar"},
		{name: "formatted", in: "mzxw 6ytb-oi==", want: "foobar"},
		{name: "empty", in: "", want: ""},
		{name: "digit one", in: "MZXW1", wantErr: true, wantPos: 4, wantCh: '1'},
		{name: "inner padding", in: "MZ=XW", wantErr: true, wantPos: 2, wantCh: '='},
		{name: "punctuation", in: "invalid@secret!", wantErr: true, wantPos: 7, wantCh: '@'},
		{name: "non-ascii", in: "MZé", wantErr: true, wantPos: 2, wantCh: 'é'},
		{name: "long s", in: "ſ", wantErr: true, wantPos: 0, wantCh: 'ſ'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStrict(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !errors.Is(err, ErrInvalidBase32) {
					t.Errorf("expected ErrInvalidBase32, got %v", err)
				}
				var de *DecodeError
				if !errors.As(err, &de) {
					t.Fatalf("expected *DecodeError, got %T", err)
				}
				if de.Pos != tt.wantPos || de.Char != tt.wantCh {
					t.Errorf("got error at %d (%q), want %d (%q)", de.Pos, de.Char, tt.wantPos, tt.wantCh)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeStrict(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
