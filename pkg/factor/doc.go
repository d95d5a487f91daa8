// Package factor manages TOTP factors: enrollment with a fresh secret,
// import of a secret issued by an identity provider, challenge verification
// and revocation.
//
// # Basic Usage
//
//	cfg, err := factor.LoadConfig() // TOTP_ISSUER, TOTP_ASSERTION_KEY, ...
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	svc, err := factor.NewService(cfg, factor.Deps{
//		Store:  factor.NewMemoryStore(),
//		Logger: &logger,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	enr, err := svc.Enroll(ctx, "user@example.com")
//	// render enr.URI as a QR code
//
//	res, err := svc.Challenge(ctx, enr.FactorID, userInput)
//	if res.Verified {
//		// res.Assertion is an HS256 JWT when TOTP_ASSERTION_KEY is set
//	}
//
// # Lost Secrets
//
// A factor whose secret is no longer in the Store cannot be recovered.
// Challenge returns ErrReenrollRequired and the account has to enroll
// again. Secrets are never derived from identifiers.
//
// # Logging
//
// Events are written through zerolog with the fields op, factor_id and
// verified. Secrets, codes, URIs and account names are not logged.
package factor
