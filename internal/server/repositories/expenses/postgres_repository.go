package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/dbx"
	"github.com/spendtrack/spendtrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {

	query :=
		`INSERT INTO expenses (id, user_id, merchant, description, amount_cents, category, other_category_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		expense.ID, expense.UserID, expense.Merchant, expense.Description,
		expense.AmountCents, expense.Category, expense.OtherCategoryName,
		expense.CreatedAt, expense.UpdatedAt).Scan(&expense.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return expense, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string, id string) (*models.Expense, error) {
	query :=
		`SELECT id, user_id, merchant, description, amount_cents, category, other_category_name, created_at, updated_at
		 FROM expenses
		 WHERE id = $1 AND user_id = $2
		 `

	expense := &models.Expense{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&expense.ID, &expense.UserID, &expense.Merchant, &expense.Description,
		&expense.AmountCents, &expense.Category, &expense.OtherCategoryName,
		&expense.CreatedAt, &expense.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return expense, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, window ListWindow) ([]*models.Expense, error) {
	query :=
		`SELECT id, user_id, merchant, description, amount_cents, category, other_category_name, created_at, updated_at
		 FROM expenses
		 WHERE user_id = $1`
	args := []any{userID}

	if !window.From.IsZero() {
		args = append(args, window.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !window.To.IsZero() {
		args = append(args, window.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(
			&expense.ID, &expense.UserID, &expense.Merchant, &expense.Description,
			&expense.AmountCents, &expense.Category, &expense.OtherCategoryName,
			&expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, expense *models.Expense) error {
	query :=
		`UPDATE expenses
		 SET merchant = $3, description = $4, amount_cents = $5, category = $6, other_category_name = $7, updated_at = $8
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.UserID, expense.Merchant, expense.Description,
		expense.AmountCents, expense.Category, expense.OtherCategoryName,
		expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id string) error {
	query :=
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
