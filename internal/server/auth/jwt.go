package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/common"
)

// TokenConfig carries the signing parameters for access tokens. It is built
// once at startup and injected where needed; there is no ambient global state.
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// GenerateAccessToken mints a signed HS256 access token for the given subject
// (the user's email). The claim set carries a fresh random jti, so two tokens
// minted for the same subject at the same instant are still distinct.
func GenerateAccessToken(cfg TokenConfig, subject string, validityDuration time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
	})

	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SubjectFromToken verifies the signature, expiry, issuer, and audience of
// tokenString and returns its subject claim. Expired tokens yield
// common.ErrTokenExpired; anything else invalid yields common.ErrInvalidToken.
func SubjectFromToken(cfg TokenConfig, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
