package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.Equal(t, "spendtrack", cfg.JWTIssuer)
	assert.Equal(t, "spendtrack-api", cfg.JWTAudience)
	assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
}
