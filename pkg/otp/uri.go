package otp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pqotp "github.com/pquerna/otp"
)

// Algorithm represents the hash algorithm used for OTP generation.
type Algorithm string

// AlgorithmSHA1 is the only algorithm the engine computes.
const AlgorithmSHA1 Algorithm = "SHA1"

// ErrUnsupportedURI indicates an otpauth URI the engine cannot serve.
var ErrUnsupportedURI = errors.New("otp: unsupported provisioning uri")

// ProvisioningConfig describes an enrolled secret for authenticator apps.
type ProvisioningConfig struct {
	// Secret is the base32-encoded shared secret.
	Secret string
	// Issuer is the name of the issuing organization (e.g., "TimeTrack").
	Issuer string
	// Account is the account identifier (e.g., "user@example.com").
	Account string
	// Algorithm is always AlgorithmSHA1.
	Algorithm Algorithm
	// Digits is always 6.
	Digits int
	// Period is always 30.
	Period int
}

// NewProvisioningConfig returns a config carrying the engine's fixed parameters.
func NewProvisioningConfig(secretBase32, issuer, account string) ProvisioningConfig {
	return ProvisioningConfig{
		Secret:    secretBase32,
		Issuer:    issuer,
		Account:   account,
		Algorithm: AlgorithmSHA1,
		Digits:    Digits,
		Period:    Period,
	}
}

// URI returns the full otpauth://totp URI including algorithm, digits and period.
func (c ProvisioningConfig) URI() string {
	return fmt.Sprintf("%s&algorithm=%s&digits=%d&period=%d",
		c.MinimalURI(), c.Algorithm, c.Digits, c.Period)
}

// MinimalURI returns the URI without algorithm, digits and period, for apps
// that assume the RFC 6238 defaults.
func (c ProvisioningConfig) MinimalURI() string {
	label := escape(c.Issuer) + ":" + escape(c.Account)
	return fmt.Sprintf("otpauth://totp/%s?secret=%s&issuer=%s", label, c.Secret, escape(c.Issuer))
}

// BuildURI returns the full provisioning URI for secretBase32.
func BuildURI(secretBase32, issuer, account string) string {
	return NewProvisioningConfig(secretBase32, issuer, account).URI()
}

// BuildMinimalURI returns the minimal provisioning URI for secretBase32.
func BuildMinimalURI(secretBase32, issuer, account string) string {
	return NewProvisioningConfig(secretBase32, issuer, account).MinimalURI()
}

// ParseURI parses an otpauth URI, typically one issued by a remote identity
// provider, and checks that it matches the engine's parameters.
func ParseURI(uri string) (ProvisioningConfig, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(uri)), "otpauth://") {
		return ProvisioningConfig{}, fmt.Errorf("%w: scheme must be otpauth", ErrUnsupportedURI)
	}
	key, err := pqotp.NewKeyFromURL(uri)
	if err != nil {
		return ProvisioningConfig{}, fmt.Errorf("%w: %v", ErrUnsupportedURI, err)
	}
	if key.Type() != "totp" {
		return ProvisioningConfig{}, fmt.Errorf("%w: type must be totp, got %q", ErrUnsupportedURI, key.Type())
	}
	if key.Algorithm() != pqotp.AlgorithmSHA1 {
		return ProvisioningConfig{}, fmt.Errorf("%w: algorithm must be SHA1, got %s", ErrUnsupportedURI, key.Algorithm())
	}
	if key.Digits().Length() != Digits {
		return ProvisioningConfig{}, fmt.Errorf("%w: digits must be %d, got %d", ErrUnsupportedURI, Digits, key.Digits().Length())
	}
	if key.Period() != Period {
		return ProvisioningConfig{}, fmt.Errorf("%w: period must be %d, got %d", ErrUnsupportedURI, Period, key.Period())
	}

	secret := Normalize(key.Secret())
	if _, err := decodeSecret(secret); err != nil {
		return ProvisioningConfig{}, err
	}

	issuer, account, err := splitLabel(uri)
	if err != nil {
		return ProvisioningConfig{}, err
	}
	return NewProvisioningConfig(secret, issuer, account), nil
}

// splitLabel reads issuer and account from the label. The label is split at
// the first literal ':' before unescaping, so an escaped ':' inside the issuer
// stays in the issuer. The issuer query parameter wins over the label prefix.
func splitLabel(uri string) (issuer, account string, err error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnsupportedURI, err)
	}

	label := strings.TrimPrefix(u.EscapedPath(), "/")
	rawIssuer, rawAccount, found := strings.Cut(label, ":")
	if !found {
		rawIssuer, rawAccount = "", label
	}
	if issuer, err = url.PathUnescape(rawIssuer); err != nil {
		return "", "", fmt.Errorf("%w: label: %v", ErrUnsupportedURI, err)
	}
	if account, err = url.PathUnescape(rawAccount); err != nil {
		return "", "", fmt.Errorf("%w: label: %v", ErrUnsupportedURI, err)
	}

	if q := u.Query().Get("issuer"); q != "" {
		issuer = q
	}
	return issuer, strings.TrimSpace(account), nil
}

// escape percent-encodes a URI component. Spaces become %20 rather than '+'
// because several authenticator apps do not decode '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
