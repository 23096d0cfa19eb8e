package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/models"
	"github.com/spendtrack/spendtrack/internal/server/repositories/expenses"
	"github.com/spendtrack/spendtrack/internal/server/repositories/repomanager"
)

// ExpenseInput carries the mutable fields of an expense record. The transport
// layer validates shape (non-empty merchant/description, non-negative amount,
// known category) before the service runs.
type ExpenseInput struct {
	Merchant          string
	Description       string
	AmountCents       int64
	Category          string
	OtherCategoryName string
}

// List filter names. FilterCustom requires both dates; the others derive their
// window from the current time.
const (
	FilterAll             = "all"
	FilterPastWeek        = "past_week"
	FilterPastMonth       = "past_month"
	FilterLastThreeMonths = "last_three_months"
	FilterCustom          = "custom"
)

// ExpenseFilter narrows a listing to expenses created inside a date window.
// The transport layer validates the name and the custom-date rules.
type ExpenseFilter struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// window translates the named filter into creation-time bounds.
func (f ExpenseFilter) window(now time.Time) expenses.ListWindow {
	switch f.Name {
	case FilterPastWeek:
		return expenses.ListWindow{From: now.AddDate(0, 0, -7)}
	case FilterPastMonth:
		return expenses.ListWindow{From: now.AddDate(0, -1, 0)}
	case FilterLastThreeMonths:
		return expenses.ListWindow{From: now.AddDate(0, -3, 0)}
	case FilterCustom:
		return expenses.ListWindow{From: f.StartDate, To: f.EndDate}
	default:
		return expenses.ListWindow{}
	}
}

// ExpenseService provides CRUD over expense records, always scoped to the
// authenticated owner.
type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m, logger: logger}
}

// Add creates an expense owned by userID.
func (s *ExpenseService) Add(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	now := time.Now().UTC()
	expense := &models.Expense{
		ID:                uuid.NewString(),
		UserID:            userID,
		Merchant:          in.Merchant,
		Description:       in.Description,
		AmountCents:       in.AmountCents,
		Category:          in.Category,
		OtherCategoryName: in.OtherCategoryName,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	e, err := s.repomanager.Expenses(s.db).Create(ctx, expense)
	if err != nil {
		s.logger.Error(ctx, "error creating expense", "error", err)
		return nil, common.ErrPersistenceFailure
	}
	return e, nil
}

// List returns the expenses owned by userID that fall inside the filter's
// date window, most recently modified first.
func (s *ExpenseService) List(ctx context.Context, userID string, filter ExpenseFilter) ([]*models.Expense, error) {
	result, err := s.repomanager.Expenses(s.db).ListByUser(ctx, userID, filter.window(time.Now().UTC()))
	if err != nil {
		s.logger.Error(ctx, "error listing expenses", "error", err)
		return nil, common.ErrPersistenceFailure
	}
	return result, nil
}

// Update replaces the mutable fields of the expense with the given id.
func (s *ExpenseService) Update(ctx context.Context, userID string, id string, in ExpenseInput) (*models.Expense, error) {
	repo := s.repomanager.Expenses(s.db)

	expense, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrExpenseNotFound
		}
		s.logger.Error(ctx, "error searching expense", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	expense.Merchant = in.Merchant
	expense.Description = in.Description
	expense.AmountCents = in.AmountCents
	expense.Category = in.Category
	expense.OtherCategoryName = in.OtherCategoryName
	expense.UpdatedAt = time.Now().UTC()

	if err := repo.Update(ctx, expense); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrExpenseNotFound
		}
		s.logger.Error(ctx, "error updating expense", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	return expense, nil
}

// Delete removes the expense with the given id.
func (s *ExpenseService) Delete(ctx context.Context, userID string, id string) error {
	if err := s.repomanager.Expenses(s.db).Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrExpenseNotFound
		}
		s.logger.Error(ctx, "error deleting expense", "error", err)
		return common.ErrPersistenceFailure
	}
	return nil
}
