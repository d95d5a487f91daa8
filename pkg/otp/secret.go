package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// SecretSize is the number of random bytes in a generated secret (160 bits).
const SecretSize = 20

// ErrEntropy indicates the random source could not supply a secret.
var ErrEntropy = errors.New("otp: entropy source failed")

// GenerateSecret generates a cryptographically random secret key.
// The secret is returned as an unpadded base32 string.
func GenerateSecret() (string, error) {
	return GenerateSecretFrom(rand.Reader)
}

// GenerateSecretFrom reads SecretSize bytes from r and returns them base32
// encoded. A short read is an error; r is never supplemented.
func GenerateSecretFrom(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil reader", ErrEntropy)
	}
	secret := make([]byte, SecretSize)
	if _, err := io.ReadFull(r, secret); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return Encode(secret), nil
}
