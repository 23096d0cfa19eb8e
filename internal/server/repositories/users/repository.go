// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/spendtrack/spendtrack/internal/server/models"
)

// Repository defines the persistence operations the auth workflows consume.
type Repository interface {
	// Create stores a new user. The caller assigns the ID and timestamps.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the most recently created user with the given email.
	// Implementations return a not-found error when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ActiveEmailExists reports whether an active user with the given email
	// exists. Deactivated accounts do not count, so their emails can be reused.
	ActiveEmailExists(ctx context.Context, email string) (bool, error)
}
