package factor

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jeremyhahn/go-totp/pkg/otp"
)

// MethodOTP is the authentication method reference carried by assertions.
const MethodOTP = "otp"

var (
	// ErrAssertionsDisabled indicates no assertion key is configured.
	ErrAssertionsDisabled = errors.New("factor: assertions disabled")
	// ErrInvalidAssertion indicates an assertion failed verification.
	ErrInvalidAssertion = errors.New("factor: invalid assertion")
)

// Claims is the payload of a challenge assertion.
type Claims struct {
	jwt.RegisteredClaims
	// FactorID is the factor that was verified.
	FactorID string `json:"fid"`
	// Methods lists the authentication methods used.
	Methods []string `json:"amr"`
}

// signer issues and checks HS256 assertions.
type signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	clock  otp.Clock
}

func (s *signer) sign(f Factor) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   f.Account,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		FactorID: f.ID,
		Methods:  []string{MethodOTP},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("factor: failed to sign assertion: %w", err)
	}
	return token, nil
}

func (s *signer) verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssertion, err)
	}
	if claims.FactorID == "" {
		return nil, fmt.Errorf("%w: missing factor id", ErrInvalidAssertion)
	}
	return claims, nil
}
