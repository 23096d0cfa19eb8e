// Package expenses declares the server-side repository contract for expense
// records.
package expenses

import (
	"context"
	"time"

	"github.com/spendtrack/spendtrack/internal/server/models"
)

// ListWindow bounds a listing by creation time. A zero From or To leaves the
// corresponding side unbounded.
type ListWindow struct {
	From time.Time
	To   time.Time
}

// Repository defines the persistence operations for expenses. All lookups and
// mutations are scoped by the owning user id.
type Repository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	GetByID(ctx context.Context, userID string, id string) (*models.Expense, error)

	// ListByUser returns the user's expenses created inside window, most
	// recently modified first.
	ListByUser(ctx context.Context, userID string, window ListWindow) ([]*models.Expense, error)

	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, userID string, id string) error
}
