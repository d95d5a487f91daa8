package factor

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/jeremyhahn/go-totp/pkg/otp"
)

const (
	// minAssertionKeyLen is the HS256 key floor (256 bits).
	minAssertionKeyLen = 32
	// defaultAssertionTTL applies when AssertionTTL is zero.
	defaultAssertionTTL = 5 * time.Minute
)

var (
	// ErrInvalidConfig indicates the service configuration is invalid.
	ErrInvalidConfig = errors.New("factor: invalid configuration")
	// ErrNilStore indicates the service was built without a store.
	ErrNilStore = errors.New("factor: store is nil")
)

// Config holds the factor service settings. It can be populated from the
// environment with LoadConfig.
type Config struct {
	// Issuer is shown by authenticator apps next to the account (required).
	Issuer string `env:"TOTP_ISSUER,required,notEmpty"`
	// AssertionKey signs the JWT returned after a successful challenge.
	// Empty disables assertions.
	AssertionKey string `env:"TOTP_ASSERTION_KEY"`
	// AssertionTTL is the lifetime of an assertion.
	// Default: 5m
	AssertionTTL time.Duration `env:"TOTP_ASSERTION_TTL" envDefault:"5m"`
	// LogLevel is a zerolog level name.
	// Default: info
	LogLevel string `env:"TOTP_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads Config from TOTP_* environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if strings.TrimSpace(c.Issuer) == "" {
		return fmt.Errorf("%w: issuer must not be empty", ErrInvalidConfig)
	}
	if c.AssertionKey != "" && len(c.AssertionKey) < minAssertionKeyLen {
		return fmt.Errorf("%w: assertion key must be at least %d bytes", ErrInvalidConfig, minAssertionKeyLen)
	}
	if c.AssertionTTL < 0 {
		return fmt.Errorf("%w: assertion ttl must not be negative", ErrInvalidConfig)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Deps are the collaborators of a Service.
type Deps struct {
	// Store holds enrolled factors (required).
	Store Store
	// Logger receives audit events. Default: zerolog.Nop()
	Logger *zerolog.Logger
	// Clock supplies verification time. Default: otp.SystemClock
	Clock otp.Clock
	// Random is the entropy source for secrets. Default: crypto/rand
	Random io.Reader
}
