// Package models defines the server-side persistence entities.
package models

import "time"

// User is a registered account. PasswordHash and PasswordSalt are the only
// secret material stored; the plaintext password never leaves the workflows.
//
// Email uniqueness is enforced only among active users: once an account is
// deactivated, its email may be registered again.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PasswordSalt string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
