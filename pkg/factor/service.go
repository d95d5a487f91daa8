package factor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeremyhahn/go-totp/pkg/otp"
)

var (
	// ErrReenrollRequired indicates the factor's secret is gone and the
	// account must enroll again with a fresh secret.
	ErrReenrollRequired = errors.New("factor: re-enrollment required")
	// ErrMissingAccount indicates an enrollment without an account name.
	ErrMissingAccount = errors.New("factor: account is required")
	// ErrNilService indicates a nil service was used.
	ErrNilService = errors.New("factor: service is nil")
)

// Enrollment is returned to the caller once, for display as a QR code.
type Enrollment struct {
	FactorID string
	Secret   string
	URI      string
}

// Result is the outcome of a challenge.
type Result struct {
	Verified bool
	// Assertion is a signed JWT, set only when Verified and assertions are enabled.
	Assertion string
}

// Service enrolls TOTP factors and verifies challenges against them.
// Logs carry factor IDs and outcomes only; secrets, codes and account
// names never reach the logger.
type Service struct {
	cfg    Config
	deps   Deps
	log    zerolog.Logger
	signer *signer
}

// NewService builds a Service from the supplied configuration.
func NewService(cfg Config, deps Deps) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if deps.Store == nil {
		return nil, ErrNilStore
	}

	// Apply defaults
	if cfg.AssertionTTL == 0 {
		cfg.AssertionTTL = defaultAssertionTTL
	}
	if deps.Clock == nil {
		deps.Clock = otp.SystemClock{}
	}
	if deps.Random == nil {
		deps.Random = rand.Reader
	}

	log := zerolog.Nop()
	if deps.Logger != nil {
		log = deps.Logger.With().Str("component", "factor").Logger()
	}
	if cfg.LogLevel != "" {
		level, _ := zerolog.ParseLevel(cfg.LogLevel)
		log = log.Level(level)
	}

	s := &Service{cfg: cfg, deps: deps, log: log}
	if cfg.AssertionKey != "" {
		s.signer = &signer{
			key:    []byte(cfg.AssertionKey),
			issuer: cfg.Issuer,
			ttl:    cfg.AssertionTTL,
			clock:  deps.Clock,
		}
	}
	return s, nil
}

// Enroll creates a factor for account with a freshly generated secret.
func (s *Service) Enroll(ctx context.Context, account string) (Enrollment, error) {
	if s == nil {
		return Enrollment{}, ErrNilService
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Enrollment{}, err
	}
	if strings.TrimSpace(account) == "" {
		return Enrollment{}, ErrMissingAccount
	}

	secret, err := otp.GenerateSecretFrom(s.deps.Random)
	if err != nil {
		s.log.Error().Str("op", "enroll").Err(err).Msg("secret generation failed")
		return Enrollment{}, err
	}

	cfg := otp.NewProvisioningConfig(secret, s.cfg.Issuer, account)
	return s.save(ctx, "enroll", cfg)
}

// Import stores a secret issued elsewhere, given as an otpauth URI.
func (s *Service) Import(ctx context.Context, uri string) (Enrollment, error) {
	if s == nil {
		return Enrollment{}, ErrNilService
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return Enrollment{}, err
	}

	cfg, err := otp.ParseURI(uri)
	if err != nil {
		s.log.Warn().Str("op", "import").Err(redact(err)).Msg("provisioning uri rejected")
		return Enrollment{}, err
	}
	if strings.TrimSpace(cfg.Account) == "" {
		s.log.Warn().Str("op", "import").Err(ErrMissingAccount).Msg("provisioning uri rejected")
		return Enrollment{}, ErrMissingAccount
	}
	if cfg.Issuer == "" {
		cfg.Issuer = s.cfg.Issuer
	}
	return s.save(ctx, "import", cfg)
}

func (s *Service) save(ctx context.Context, op string, cfg otp.ProvisioningConfig) (Enrollment, error) {
	f := Factor{
		ID:        uuid.NewString(),
		Account:   cfg.Account,
		Issuer:    cfg.Issuer,
		Secret:    cfg.Secret,
		CreatedAt: s.deps.Clock.Now().UTC(),
	}
	if err := s.deps.Store.Save(ctx, f); err != nil {
		s.log.Error().Str("op", op).Str("factor_id", f.ID).Err(err).Msg("factor store failed")
		return Enrollment{}, fmt.Errorf("factor: save: %w", err)
	}

	s.log.Info().Str("op", op).Str("factor_id", f.ID).Msg("factor enrolled")
	return Enrollment{FactorID: f.ID, Secret: f.Secret, URI: cfg.URI()}, nil
}

// Challenge verifies code against the factor at the current time.
// A wrong or malformed code is a Result with Verified false, not an error.
// A factor that no longer exists yields ErrReenrollRequired.
func (s *Service) Challenge(ctx context.Context, factorID, code string) (Result, error) {
	if s == nil {
		return Result{}, ErrNilService
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	f, err := s.deps.Store.Load(ctx, factorID)
	if errors.Is(err, ErrFactorNotFound) {
		s.log.Warn().Str("op", "challenge").Str("factor_id", factorID).Msg("factor missing, re-enrollment required")
		return Result{}, fmt.Errorf("%w: %w", ErrReenrollRequired, err)
	}
	if err != nil {
		s.log.Error().Str("op", "challenge").Str("factor_id", factorID).Err(err).Msg("factor load failed")
		return Result{}, fmt.Errorf("factor: load: %w", err)
	}

	verified := otp.Verify(f.Secret, code, s.deps.Clock.Now().Unix())
	s.log.Info().Str("op", "challenge").Str("factor_id", factorID).Bool("verified", verified).Msg("factor challenged")
	if !verified {
		return Result{}, nil
	}

	res := Result{Verified: true}
	if s.signer != nil {
		token, err := s.signer.sign(f)
		if err != nil {
			return Result{}, err
		}
		res.Assertion = token
	}
	return res, nil
}

// Authenticate is Challenge reduced to an error, for handler chains.
// It returns otp.ErrInvalidCode when the code does not verify.
func (s *Service) Authenticate(ctx context.Context, factorID, code string) error {
	res, err := s.Challenge(ctx, factorID, code)
	if err != nil {
		return err
	}
	if !res.Verified {
		return otp.ErrInvalidCode
	}
	return nil
}

// VerifyAssertion checks an assertion issued by Challenge.
func (s *Service) VerifyAssertion(token string) (*Claims, error) {
	if s == nil {
		return nil, ErrNilService
	}
	if s.signer == nil {
		return nil, ErrAssertionsDisabled
	}
	return s.signer.verify(token)
}

// Revoke deletes the factor. Its secret cannot be recovered afterwards.
func (s *Service) Revoke(ctx context.Context, factorID string) error {
	if s == nil {
		return ErrNilService
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.deps.Store.Delete(ctx, factorID); err != nil {
		return fmt.Errorf("factor: revoke: %w", err)
	}
	s.log.Info().Str("op", "revoke").Str("factor_id", factorID).Msg("factor revoked")
	return nil
}

// redact drops error detail that may echo a secret back into the log.
func redact(err error) error {
	switch {
	case errors.Is(err, otp.ErrInvalidBase32):
		return otp.ErrInvalidBase32
	case errors.Is(err, otp.ErrUnsupportedURI):
		return otp.ErrUnsupportedURI
	}
	return err
}
