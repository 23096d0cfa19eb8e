// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/spendtrack/spendtrack/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh
// tokens. Rows are never deleted; rotation revokes them so replay attempts can
// be detected later.
type Repository interface {
	// Create stores a new refresh token row.
	Create(ctx context.Context, token *models.RefreshToken) error

	// FindValid looks up a live token by its opaque value: the value must
	// match, the token must not be revoked, and its expiry must be after now.
	// Implementations return a not-found error otherwise.
	FindValid(ctx context.Context, value string, now time.Time) (*models.RefreshToken, error)

	// Revoke sets the token's revocation timestamp. Revoking a token that is
	// already revoked (or absent) returns a not-found error, which is what
	// makes concurrent rotations of the same token mutually exclusive.
	Revoke(ctx context.Context, id string, now time.Time) error
}
