package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors returned by the OTP authenticator.
var (
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// Clock supplies the current time to the authenticator.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// Config holds OTP authenticator configuration.
type Config struct {
	// Secret is the base32-encoded shared secret key (required).
	// Whitespace, '-' separators, padding and lowercase letters are accepted.
	Secret string
	// Issuer is the name of the issuing organization (e.g., "TimeTrack").
	Issuer string
	// AccountName is the account identifier (e.g., "user@example.com").
	AccountName string
	// Clock supplies the verification time.
	// Default: SystemClock
	Clock Clock
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}
	if _, err := decodeSecret(c.Secret); err != nil {
		return fmt.Errorf("%w: secret must be valid base32: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Authenticator validates TOTP codes for a single secret.
// It is safe for concurrent use.
type Authenticator struct {
	cfg Config
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Secret = Normalize(cfg.Secret)
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}

	return &Authenticator{cfg: cfg}, nil
}

// Authenticate validates a code against the current time with a one period
// tolerance on either side.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if !ValidCodeFormat(code) {
		return fmt.Errorf("%w: code must be %d digits", ErrInvalidCode, Digits)
	}

	if !Verify(a.cfg.Secret, code, a.cfg.Clock.Now().Unix()) {
		return ErrInvalidCode
	}

	return nil
}

// Generate returns the code for the current time.
func (a *Authenticator) Generate() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	code, err := CurrentCode(a.cfg.Secret, a.cfg.Clock.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
	}
	return code, nil
}

// GetProvisioningURI returns the otpauth:// URI for QR code generation.
// This URI can be encoded as a QR code and scanned by authenticator apps.
func (a *Authenticator) GetProvisioningURI() string {
	if a == nil {
		return ""
	}
	return BuildURI(a.cfg.Secret, a.cfg.Issuer, a.cfg.AccountName)
}
