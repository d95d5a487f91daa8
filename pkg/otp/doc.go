// Package otp implements TOTP (RFC 6238) on top of HOTP (RFC 4226) with the
// parameters used by common authenticator apps: HMAC-SHA1, 6 digits and a
// 30 second period.
//
// All functions are pure. The verification time is passed in as Unix seconds,
// so results are deterministic and the package never reads the wall clock
// except through the Authenticator's Clock.
//
// # Secrets
//
// Generate a secret from crypto/rand and hand it to the user as a
// provisioning URI:
//
//	secret, err := otp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	uri := otp.BuildURI(secret, "TimeTrack", "user@example.com")
//	// Display uri as QR code for user to scan
//
// Secrets are only ever produced from fresh entropy. There is no way to
// derive one from an identifier; a lost secret means re-enrollment.
//
// # Codes
//
//	code, err := otp.CurrentCode(secret, time.Now().Unix())
//
//	if otp.Verify(secret, userInput, time.Now().Unix()) {
//	    // accepted
//	}
//
// Verify accepts the code for the current period and one period on either
// side. It returns false, never an error, for malformed codes, malformed
// secrets and pre-epoch times.
//
// # Base32
//
// Decode is lenient and skips characters outside the alphabet. DecodeStrict
// first normalizes the input (whitespace, '-' and padding removed, ASCII
// uppercased) and then reports any remaining invalid character as a
// *DecodeError. The engine itself always decodes strictly.
//
// # Authenticator
//
// Authenticator binds a secret to a Clock and reports failures as errors:
//
//	auth, err := otp.NewAuthenticator(otp.Config{
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "TimeTrack",
//	    AccountName: "user@example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := auth.Authenticate(ctx, "123456"); err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
// # Thread Safety
//
// Every function and the Authenticator type are safe for concurrent use.
package otp
