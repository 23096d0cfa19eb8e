package auth

import (
	"encoding/base64"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	t.Parallel()

	salt, err := GenerateSalt(DefaultSaltSize)
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	h1 := HashPassword("Passw0rd!", salt)
	h2 := HashPassword("Passw0rd!", salt)
	if h1 != h2 {
		t.Fatalf("same password and salt must hash identically: %q != %q", h1, h2)
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	salt, err := GenerateSalt(DefaultSaltSize)
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	hash := HashPassword("Passw0rd!", salt)

	if !VerifyPassword("Passw0rd!", salt, hash) {
		t.Fatalf("correct password must verify")
	}
	if VerifyPassword("passw0rd!", salt, hash) {
		t.Fatalf("wrong password must not verify")
	}
	if VerifyPassword("Passw0rd!", salt+"x", hash) {
		t.Fatalf("wrong salt must not verify")
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s, err := GenerateSalt(DefaultSaltSize)
		if err != nil {
			t.Fatalf("GenerateSalt error: %v", err)
		}
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate salt after %d draws: %q", i, s)
		}
		seen[s] = struct{}{}
	}
}

func TestGenerateSalt_Encoding(t *testing.T) {
	t.Parallel()

	s, err := GenerateSalt(DefaultSaltSize)
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if len(raw) != DefaultSaltSize {
		t.Fatalf("want %d random bytes, got %d", DefaultSaltSize, len(raw))
	}
}

func TestGenerateRefreshTokenValue_Length(t *testing.T) {
	t.Parallel()

	v, err := GenerateRefreshTokenValue()
	if err != nil {
		t.Fatalf("GenerateRefreshTokenValue error: %v", err)
	}
	if len(v) != 36 {
		t.Fatalf("want 36-character token value, got %d (%q)", len(v), v)
	}

	v2, err := GenerateRefreshTokenValue()
	if err != nil {
		t.Fatalf("GenerateRefreshTokenValue error: %v", err)
	}
	if v == v2 {
		t.Fatalf("two token values must differ")
	}
}
