package config

import "time"

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// TokenSecret is the key used to sign self-contained session tokens.
	// Required; the process refuses to start without it.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`

	// TokenSecretID is an optional key identifier stamped into signed
	// tokens so verifiers can select the right key during rotation.
	TokenSecretID string `env:"AUTH_TOKEN_SECRET_ID" envDefault:""`

	// VerifySecrets holds additional verify-only secrets keyed by ID,
	// accepted during key rotation. Format: "kid=secret;kid2=secret2".
	// Setting this requires TokenSecretID, and the ID must appear in the map.
	VerifySecrets map[string]string `env:"AUTH_VERIFY_SECRETS" envSeparator:";" envKeyValSeparator:"="`

	// SessionTTL is the lifetime of an issued session, for both the
	// server-side session path and the signed-token path.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// Issuer is the issuer claim stamped into signed tokens.
	Issuer string `env:"AUTH_TOKEN_ISSUER" envDefault:"pulse"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	// Never issue zero/negative-lifetime sessions; fall back to the default.
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
}
