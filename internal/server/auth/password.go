// Package auth implements the credential and token primitives of the server:
// salted password hashing and HMAC-signed access tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const (
	// DefaultSaltSize is the number of random bytes behind a password salt.
	DefaultSaltSize = 16

	// refreshTokenSize is the number of random bytes behind an opaque refresh
	// token value. 27 bytes encode to exactly 36 base64 characters.
	refreshTokenSize = 27
)

// GenerateSalt returns size cryptographically random bytes in base64.
// The only failure mode is the entropy source itself.
func GenerateSalt(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// GenerateRefreshTokenValue returns a fresh opaque refresh token value.
func GenerateRefreshTokenValue() (string, error) {
	return GenerateSalt(refreshTokenSize)
}

// HashPassword returns the base64-encoded SHA-256 digest of password
// concatenated with salt. Deterministic: the same inputs always produce the
// same output, which is what verification relies on.
func HashPassword(password string, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword recomputes the hash of candidate with salt and compares it
// to storedHash in constant time.
func VerifyPassword(candidate string, salt string, storedHash string) bool {
	computed := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
