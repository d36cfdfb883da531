package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/pulse-api/config"
	"github.com/target/pulse-api/internal/adapters/credentials"
	redisadapter "github.com/target/pulse-api/internal/adapters/redis"
	"github.com/target/pulse-api/internal/adapters/tokens"
	"github.com/target/pulse-api/internal/data"
	"github.com/target/pulse-api/internal/ports"
	"github.com/target/pulse-api/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service with the session strategy picked
// once at startup: server-side sessions when a Redis client is available,
// self-contained signed tokens otherwise. The choice never changes at runtime.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	issuer, err := buildTokenIssuer(cfg, logger)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Accounts:    data.NewAccountRepo(cfg.DB),
		Teams:       data.NewTeamRepo(cfg.DB),
		Credentials: credentials.BcryptVerifier{},
		Issuer:      issuer,
		SessionTTL:  cfg.Auth.SessionTTL,
		Logger:      logger,
	}), nil
}

//nolint:ireturn // the whole point is returning whichever strategy was selected.
func buildTokenIssuer(cfg AuthConfig, logger *slog.Logger) (ports.TokenIssuer, error) {
	if cfg.RedisClient != nil {
		logger.Info("session strategy selected", "strategy", "redis")
		return redisadapter.NewSessionStore(cfg.RedisClient), nil
	}

	signer, err := tokens.NewSigner(tokens.Config{
		Secret:        cfg.Auth.TokenSecret,
		KeyID:         cfg.Auth.TokenSecretID,
		VerifySecrets: cfg.Auth.VerifySecrets,
		Issuer:        cfg.Auth.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("build token signer: %w", err)
	}

	logger.Info("session strategy selected", "strategy", "signed-token")
	return signer, nil
}
