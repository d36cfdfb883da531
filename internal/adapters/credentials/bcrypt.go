package credentials

// Package credentials verifies submitted secrets against stored bcrypt hashes.

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/target/pulse-api/internal/ports"
)

// BcryptVerifier checks passwords against bcrypt hashes.
// bcrypt's comparison is constant-time over the derived key, so failures do
// not leak how close the guess was. Neither input is ever logged.
type BcryptVerifier struct{}

var _ ports.CredentialVerifier = BcryptVerifier{}

// Verify reports whether the supplied secret matches the stored hash.
// Any failure, including a malformed stored hash, is a plain false.
func (BcryptVerifier) Verify(storedHash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret)) == nil
}

// HashPassword hashes a password for storage. Used by seeding and tests;
// password-change flows live outside this service.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
