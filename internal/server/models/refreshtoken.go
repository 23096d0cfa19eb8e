package models

import "time"

// RefreshToken is a server-stored, single-use token exchanged for a fresh
// access token. A token is live while RevokedAt is nil and ExpiresAt is in
// the future. Rotation sets RevokedAt and never clears it; revoked rows are
// kept for audit and replay detection.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}
